// Package usstates provides deterministic US state data, search helpers, and
// a small net/http handler that returns JSON options for jurisdiction
// selects.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results. The backing data is loaded from the
// embedded list under data/us_states.txt. Importing the package registers the
// "us-states" provider on the default data source registry.
package usstates
