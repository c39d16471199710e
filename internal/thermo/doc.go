// Package thermo provides the core value types and error taxonomy for
// thermodynamic cycle computation.
//
// The package defines the fundamental vocabulary shared by the gas model,
// the cycle engine and the numerical kernels:
//
//   - [State]: one vertex of a cycle (pressure, volume, temperature, entropy)
//   - [ComputeError]: a lower-level failure wrapped with leg context
//   - the sentinel errors every component reports through
//
// All values are plain in-memory scalars; nothing in this package performs
// I/O or holds mutable shared state.
package thermo
