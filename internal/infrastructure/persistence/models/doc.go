// Package models contains the GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain stays free of ORM tags.
//
// Every model has a ToDomain method and a <Name>ModelFromDomain constructor.
// Dates without a time component use the SQL date type; money and grams use
// decimal(18,4). JSON payloads are stored as text in jsonb columns.
package models
