package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeRef is what can be recovered from a node identifier.
type NodeRef struct {
	Chain         string `json:"chain"`
	ResName       string `json:"residue_name"`
	ResNum        int    `json:"residue_number"`
	InsertionCode string `json:"insertion_code,omitempty"`
	Atom          string `json:"atom,omitempty"`
}

// residueID formats "A:LYS:14", or "A:LYS:14A" for a residue with an
// insertion code.
func residueID(chain, name string, num int, icode string) string {
	return fmt.Sprintf("%s:%s:%d%s", chain, name, num, icode)
}

func atomID(res *Residue, atom string) string {
	return res.ID + ":" + atom
}

// insertionCode is the insertion code of a residue as a string, empty when
// it is blank.
func insertionCode(b byte) string {
	if b == 0 || b == ' ' {
		return ""
	}
	return string(b)
}

// ParseNodeID splits identifiers of the form "A:LYS:14", "A:LYS:14A" or
// "A:LYS:14:CE". ok is false when id has some other shape.
func ParseNodeID(id string) (ref NodeRef, ok bool) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return NodeRef{}, false
	}
	num, icode := parts[2], ""
	if n := len(num); n > 1 && isLetter(num[n-1]) {
		num, icode = num[:n-1], num[n-1:]
	}
	resNum, err := strconv.Atoi(num)
	if err != nil {
		return NodeRef{}, false
	}
	ref = NodeRef{
		Chain:         parts[0],
		ResName:       parts[1],
		ResNum:        resNum,
		InsertionCode: icode,
	}
	if len(parts) == 4 {
		ref.Atom = parts[3]
	}
	return ref, true
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
