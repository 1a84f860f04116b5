// Package delay provides a fixed-capacity circular delay line with
// fractional-sample reads.
//
// The line is read before it is written: for each input sample a caller first
// reads the delayed value with [Line.Pop] and then stores the new value with
// [Line.Push]. A value pushed at sample n is returned by Pop(d) at sample n+d.
package delay
