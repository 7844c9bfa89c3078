package renderer

import (
	"image/color"
	"math/rand"
)

// ImageBlock is a contiguous run of image rows [StartRow, EndRow) rendered
// by a single goroutine. Rows is filled top to bottom as rendering proceeds.
type ImageBlock struct {
	ID       int
	StartRow int
	EndRow   int
	Rows     [][]color.RGBA
	Random   *rand.Rand // Block-specific random generator
}

// NewImageBlock creates an empty block covering rows [startRow, endRow)
func NewImageBlock(id, startRow, endRow int, seed int64) *ImageBlock {
	return &ImageBlock{
		ID:       id,
		StartRow: startRow,
		EndRow:   endRow,
		Rows:     make([][]color.RGBA, 0, endRow-startRow),
		Random:   rand.New(rand.NewSource(seed + int64(id))),
	}
}

// Height returns the number of rows the block declares
func (b *ImageBlock) Height() int {
	return b.EndRow - b.StartRow
}

// PartitionRows splits height rows into numBlocks blocks of height/numBlocks
// rows each, with the remainder appended to the last block. The block count
// is clamped to [1, height] so no block is empty.
func PartitionRows(height, numBlocks int, seed int64) []*ImageBlock {
	if height <= 0 {
		return nil
	}
	numBlocks = max(1, min(numBlocks, height))

	rowsPerBlock := height / numBlocks
	blocks := make([]*ImageBlock, 0, numBlocks)
	for id := 0; id < numBlocks; id++ {
		start := id * rowsPerBlock
		end := start + rowsPerBlock
		if id == numBlocks-1 {
			end = height
		}
		blocks = append(blocks, NewImageBlock(id, start, end, seed))
	}

	return blocks
}
