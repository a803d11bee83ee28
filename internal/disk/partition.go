package disk

// Partition locates one partition within a disk or image.
type Partition struct {
	Num       int          // 1-based slot in the partition table
	Type      MBRPartition // partition type ID from the table entry
	Offset    uint64       // offset in bytes from the start of the disk
	Size      uint64       // size in bytes of the partition
	BlockSize uint32       // block size in bytes
}
