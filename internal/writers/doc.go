// Package writers turns melting results into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (report lines, unit conversion, JSON/JSONL).
//   • core/thermo stays calorie-based; joules appear only here.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
