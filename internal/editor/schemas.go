package editor

import "github.com/matchdesk/league-console/internal/domain/sport"

var sportOptions = []Option{
	{Value: sport.Football.String(), Label: "Football"},
	{Value: sport.Volleyball.String(), Label: "Volleyball"},
	{Value: sport.Basketball.String(), Label: "Basketball"},
}

// Canned schemas for the console's edit dialogs. Keys match the domain
// structs' JSON tags, so Decode targets the models directly.

func CitySchema() Schema {
	return Schema{
		{Key: "name", Label: "Name", Kind: Text, Rules: "required,max=80"},
	}
}

func LeagueSchema(groups []Option) Schema {
	return Schema{
		{Key: "name", Label: "Name", Kind: Text, Rules: "required,max=80"},
		{Key: "leagueGroupId", Label: "Division group", Kind: Select, Options: groups},
		{Key: "order", Label: "Sort order", Kind: Number, Rules: "gte=0"},
		{Key: "sportType", Label: "Sport", Kind: Select, Rules: "required", Options: sportOptions},
	}
}

func SeasonSchema() Schema {
	return Schema{
		{Key: "name", Label: "Name", Kind: Text, Rules: "required,max=80"},
		{Key: "date", Label: "Start date", Kind: Date},
		{Key: "order", Label: "Sort order", Kind: Number, Rules: "gte=0"},
	}
}

func TeamSchema() Schema {
	return Schema{
		{Key: "name", Label: "Name", Kind: Text, Rules: "required,max=80"},
		{Key: "primaryColor", Label: "Primary color", Kind: Color},
		{Key: "secondaryColor", Label: "Secondary color", Kind: Color},
		{Key: "sportType", Label: "Sport", Kind: Select, Rules: "required", Options: sportOptions},
	}
}

func CupSchema() Schema {
	return Schema{
		{Key: "name", Label: "Name", Kind: Text, Rules: "required,max=80"},
		{Key: "sportType", Label: "Sport", Kind: Select, Rules: "required", Options: sportOptions},
		{Key: "startDate", Label: "Starts", Kind: Date},
		{Key: "endDate", Label: "Ends", Kind: Date},
	}
}

func ProfileSchema() Schema {
	return Schema{
		{Key: "firstName", Label: "First name", Kind: Text, Rules: "required,max=60"},
		{Key: "lastName", Label: "Last name", Kind: Text, Rules: "required,max=60"},
		{Key: "dateOfBirth", Label: "Date of birth", Kind: Date},
		{Key: "position", Label: "Position", Kind: Text, Rules: "max=40"},
	}
}
