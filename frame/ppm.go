package frame

import (
	"bufio"
	"fmt"
	"io"
)

// Write the frame as a plain (P3) PPM image with one pixel per line.
func WritePPM(w io.Writer, b *Buffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n# rendered by yart\n%d %d\n255\n", b.Width, b.Height); err != nil {
		return err
	}

	for _, c := range b.Pixels {
		q := c.Quantize()
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", q[0], q[1], q[2]); err != nil {
			return err
		}
	}

	return bw.Flush()
}
