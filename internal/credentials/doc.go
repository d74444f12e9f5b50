// Package credentials stores usernames and bcrypt password hashes in a
// single YAML file.
//
// The file is a flat mapping that stays readable in a diff:
//
//	admin: $2a$10$...
//	bob: $2a$10$...
//
// Every Register call loads the whole file, adds one entry and rewrites the
// whole file. There is no locking; concurrent registrations race and the last
// writer wins.
package credentials
