package listview

// Built-in views for the record types the application displays. The REST
// client normalizes every decoded record against the matching view, so
// engine callers always see catalog-typed values.
var (
	// Users is the catalog for the user management screen.
	Users = &View{
		Name: "users",
		Fields: []Field{
			{Name: "id", Type: FieldTypeInteger},
			{Name: "email", Type: FieldTypeString, Searchable: true},
			{Name: "username", Type: FieldTypeString, Searchable: true},
			{Name: "is_admin", Type: FieldTypeBoolean},
			{Name: "created_at", Type: FieldTypeString},
		},
	}

	// Subscribers is the catalog for the daily-nuggets subscribers screen.
	Subscribers = &View{
		Name: "subscribers",
		Fields: []Field{
			{Name: "id", Type: FieldTypeInteger},
			{Name: "email", Type: FieldTypeString, Searchable: true},
			{Name: "frequency", Type: FieldTypeString},
			{Name: "is_active", Type: FieldTypeBoolean},
			{Name: "subscribed_at", Type: FieldTypeString},
		},
	}

	// Quotes is the catalog for the quote management and favorites screens.
	Quotes = &View{
		Name: "quotes",
		Fields: []Field{
			{Name: "id", Type: FieldTypeInteger},
			{Name: "quote", Type: FieldTypeString, Searchable: true},
			{Name: "author", Type: FieldTypeString, Searchable: true},
			{Name: "tag", Type: FieldTypeString},
			{Name: "favorites_count", Type: FieldTypeInteger},
			{Name: "created_at", Type: FieldTypeString},
		},
	}

	// Tags is the catalog for the tag management screen.
	Tags = &View{
		Name: "tags",
		Fields: []Field{
			{Name: "id", Type: FieldTypeInteger},
			{Name: "name", Type: FieldTypeString, Searchable: true},
			{Name: "quote_count", Type: FieldTypeInteger},
		},
	}
)
