// Package cleaning turns raw measurement tables into analysis-ready tables.
//
// Normalize replaces absolute observation times by offsets from the first observation,
// and OutlierFilter drops rows whose metric values are far from the column mean.
package cleaning
