// Package partition wraps the raw flash partition that the log engine
// writes onto. It is the sole I/O surface the engine uses: block-aligned
// read, write, and erase, plus fixed block-size/total-size descriptors.
//
// # Quick start
//
//	p, err := partition.OpenFile(partition.FileOptions{
//		Path:      "/dev/flash0",
//		BlockSize: 16 * 1024,
//	})
//	if err != nil {
//		...
//	}
//	defer p.Close()
//
// Memory provides an in-memory Partition for tests; it enforces the same
// "erase to 0xFF, writes only clear bits" discipline that real flash
// imposes, panicking on a violation so test bugs surface immediately
// instead of silently producing a partition the engine could never see
// on real hardware.
package partition
