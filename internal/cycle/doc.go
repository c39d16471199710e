// Package cycle computes Otto and Diesel engine cycles under a chosen gas
// model. A cycle is four vertices A, B, C, D joined by an isentropic
// compression, a heat-addition leg (isochoric for Otto, isobaric for
// Diesel), an isentropic expansion and an isochoric rejection.
package cycle
