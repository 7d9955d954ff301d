// Package errors provides structured, actionable error messages for the
// notesweb command.
//
// Each error has a unique code (e.g., "E120") that maps to a category, a
// short message and a suggestion. Configuration errors can point at the
// offending position in the file:
//
//	err := errors.New("E120").
//	    WithLocation("notesweb.json", 4, 12).
//	    WithDetail("invalid character '}' looking for beginning of value")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E120: Invalid configuration file
//	//
//	//   notesweb.json:4:12
//	//
//	//       2 │   "base": "/notes/",
//	//       3 │   "history": "web",
//	//   →   4 │   "address": }
//	//         │            ^
//	//
//	//   invalid character '}' looking for beginning of value
//	//
//	//   Hint: Check that notesweb.json is valid JSON
//
// # Categories
//
//   - config: notesweb.json and environment overrides
//   - routing: route table construction and resolution
//   - server: listener and shutdown failures
//   - cli: command line usage
package errors
