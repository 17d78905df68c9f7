package integral

// Chunk is an inclusive range [Start, End] of interior sample indices owned
// by one worker. An empty chunk has End == Start-1.
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of indices in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start + 1
}

// Split lays out workers contiguous chunks covering 1..total. Sizes differ by
// at most one: the first total%workers chunks carry the extra index. When
// workers exceeds total the trailing chunks are empty. workers must be
// positive.
func Split(total, workers int) []Chunk {
	if total < 0 {
		total = 0
	}
	size, rem := total/workers, total%workers
	chunks := make([]Chunk, workers)
	next := 1
	for w := range chunks {
		n := size
		if w < rem {
			n++
		}
		chunks[w] = Chunk{Start: next, End: next + n - 1}
		next += n
	}
	return chunks
}
