package core

import "fmt"

type StorageType int

const (
	IntegerType StorageType = iota
	BooleanType
	DecimalType
	DateTimeType
	TextType
)

func (t StorageType) String() string {
	switch t {
	case IntegerType:
		return "INTEGER"
	case BooleanType:
		return "BOOLEAN"
	case DecimalType:
		return "DECIMAL"
	case DateTimeType:
		return "DATETIME"
	case TextType:
		return "TEXT"
	default:
		return fmt.Sprintf("StorageType(%d)", int(t))
	}
}

// ColumnSpec is the caller-supplied description of one column: a name, a
// human-written type descriptor such as "varchar(50)", and a nullable flag.
type ColumnSpec struct {
	Name     string `json:"name"`
	TypeDesc string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Column is a resolved column as created in, or reflected from, the store.
// Length is only meaningful for TextType; zero means unbounded.
type Column struct {
	Name       string      `json:"name"`
	Type       StorageType `json:"type"`
	Length     int         `json:"length,omitempty"`
	PrimaryKey bool        `json:"primaryKey"`
	Nullable   bool        `json:"nullable"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

type CompareOp int

const (
	Equals CompareOp = iota
	NotEquals
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

func (op CompareOp) String() string {
	switch op {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// Condition is one column comparison from a WHERE clause. Value holds the
// literal text exactly as written; comparison operands are not coerced.
type Condition struct {
	Column string
	Op     CompareOp
	Value  string
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, c.Value)
}

// Identity identifies the author of recorded changes.
type Identity struct {
	Name  string
	Email string
}
