// Package energy estimates calories burned for aerobic and resistance
// sessions and derives daily calorie and macronutrient targets.
//
// Every function is a pure computation over its arguments. The activity and
// exercise reference data is passed in as a Catalog, so tests can run against
// synthetic catalogs.
package energy
