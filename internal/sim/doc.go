// Package sim drives a multibody state through time. Each step
// evaluates coordinate rates (qdot = N(q) u) and the articulated-body
// forward dynamics (udot) under the registered force elements,
// advances (q, u) by explicit Euler or classic RK4, then projects any
// quaternion coordinates back onto unit norm. The stepper also tracks
// total energy so runs can report their drift.
package sim
