package commands

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

// hexDumpWidth is the number of bytes per hex dump line
const hexDumpWidth = 32

// toHexDump renders n big-endian as lines of space separated bytes
func toHexDump(n *big.Int) string {
	raw := n.Bytes()
	if len(raw) == 0 {
		raw = []byte{0}
	}

	var sb strings.Builder
	for start := 0; start < len(raw); start += hexDumpWidth {
		end := min(start+hexDumpWidth, len(raw))
		for i, b := range raw[start:end] {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", b)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatInt(n *big.Int, hex bool) string {
	if hex {
		return "\n" + toHexDump(n)
	}
	return n.String()
}

type namedValue struct {
	name  string
	value *big.Int
}

// printValues writes one "name: value" entry per value between separator lines
func printValues(w io.Writer, title string, hex bool, values ...namedValue) {
	separator := strings.Repeat("-", 74)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%s:\n\n", title)
	for _, v := range values {
		fmt.Fprintf(w, "%s: %s\n", v.name, formatInt(v.value, hex))
	}
	fmt.Fprintln(w, separator)
}
