// Package signal defines the sample-buffer value types shared by the FDM
// pipeline stages, plus basic amplitude operations and tone generators.
//
// Every [Signal] carries its sample rate as an explicit field; pipeline
// stages validate rates at their boundaries instead of inferring them from
// call position. Values are never mutated in place: operations return new
// buffers derived from their inputs.
package signal
