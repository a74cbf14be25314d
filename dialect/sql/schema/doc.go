// Package schema builds schema graphs from live databases.
//
// Tables, primary keys and foreign keys are read through atlas inspectors
// for SQLite, PostgreSQL and MySQL. Each table with a primary key becomes a
// type named after its singular camel-case name, and each foreign key
// becomes a principal edge named after its column without the "_id" suffix.
package schema
