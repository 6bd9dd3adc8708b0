// Package pipeline wires the full frequency-division trip: two stereo
// sources become four baseband channels, each channel is shaped by its
// slot filter, the four are stacked onto carriers in one wideband
// composite, and the composite is demodulated back into four recovered
// channels.
package pipeline
