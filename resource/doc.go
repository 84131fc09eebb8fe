// Package resource enforces process-wide limits on container memory and
// snapshot IO throughput.
//
// A Controller is shared by every allocator and snapshot manager that should
// count against the same budget. All methods are safe on a nil *Controller,
// which behaves as "unlimited".
package resource
