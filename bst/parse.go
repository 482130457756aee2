package bst

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrUnknownOp  = errors.New("unknown operation")
)

// ParseIntは、利用者の入力をキーに変換する。数値でない入力はツリーに届く前にここで拒否される。
func ParseInt(s string) (Int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "parsing key %q", s), ErrInvalidKey)
	}
	return Int(n), nil
}

// ParseOpは、操作名を解釈する。
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insert", "add", "+":
		return OpInsert, nil
	case "delete", "remove", "-":
		return OpDelete, nil
	case "search", "find", "?":
		return OpSearch, nil
	}
	return 0, errors.Mark(errors.Newf("operation %q", s), ErrUnknownOp)
}
