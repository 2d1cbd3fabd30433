// Package filter compiles MUST / SHOULD / MUST-NOT clauses into criteria
// that evaluate eight seeds at once.
//
// Clauses are grouped by category. Each group scans only the antes and
// slots its clauses ask for and yields a lane mask: a lane passes when
// every positive clause matched at least once and no inverted clause
// matched. A composite stage ANDs the masks of all groups.
package filter
