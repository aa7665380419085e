package sql

import (
	"errors"
	"fmt"

	"github.com/Razielxkx/Database-editor/core"
)

var (
	// ErrUnrecognizedStatement is returned when the leading keyword is not
	// one of SELECT, INSERT, UPDATE, DELETE.
	ErrUnrecognizedStatement = errors.New("unrecognized statement")

	// ErrFormat wraps every parse failure of an otherwise recognized
	// statement.
	ErrFormat = errors.New("malformed statement")
)

type StatementType int

const (
	SelectStatementType StatementType = iota
	InsertStatementType
	UpdateStatementType
	DeleteStatementType
)

type Statement interface {
	Type() StatementType
}

// SelectStatement is a wildcard projection over one table. A nil Where means
// no filter.
type SelectStatement struct {
	Table string
	Where []core.Condition
}

// InsertStatement carries value literals as written. A nil Columns slice
// means the column list was omitted and the table's declared order applies.
type InsertStatement struct {
	Table   string
	Columns []string
	Values  []string
}

type SetClause struct {
	Column string
	Value  string
}

// UpdateStatement with a nil Where updates every row.
type UpdateStatement struct {
	Table       string
	Assignments []SetClause
	Where       []core.Condition
}

// DeleteStatement with a nil Where is syntactically valid; the executor
// refuses it without touching the store.
type DeleteStatement struct {
	Table string
	Where []core.Condition
}

func (s SelectStatement) Type() StatementType {
	return SelectStatementType
}

func (s InsertStatement) Type() StatementType {
	return InsertStatementType
}

func (s UpdateStatement) Type() StatementType {
	return UpdateStatementType
}

func (s DeleteStatement) Type() StatementType {
	return DeleteStatementType
}

type Parser struct {
	lexer *Lexer
}

func NewParser(statement string) *Parser {
	return &Parser{lexer: NewLexer(statement)}
}

// Parse consumes exactly one statement. Trailing input after a complete
// statement is a format error; statement separators are not supported.
func (parser *Parser) Parse() (Statement, error) {
	token := parser.lexer.NextToken()
	switch token.Type {
	case Select:
		return parseSelect(parser)
	case Insert:
		return parseInsert(parser)
	case Update:
		return parseUpdate(parser)
	case Delete:
		return parseDelete(parser)
	case EOF:
		return nil, fmt.Errorf("%w: empty statement", ErrUnrecognizedStatement)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, token.Value)
	}
}

func parseSelect(parser *Parser) (Statement, error) {
	var statement SelectStatement

	token := parser.lexer.NextToken()
	if token.Type != Wildcard {
		return nil, fmt.Errorf("%w: only * projection is supported", ErrFormat)
	}

	token = parser.lexer.NextToken()
	if token.Type != From {
		return nil, fmt.Errorf("%w: expected FROM after *", ErrFormat)
	}

	table, err := parseTableName(parser)
	if err != nil {
		return nil, err
	}
	statement.Table = table

	token = parser.lexer.NextToken()
	if token.Type == Where {
		statement.Where, err = parseWhere(parser)
		if err != nil {
			return nil, err
		}
		token = parser.lexer.NextToken()
	}

	if token.Type != EOF {
		return nil, fmt.Errorf("%w: unexpected %s after statement", ErrFormat, token)
	}

	return statement, nil
}

func parseInsert(parser *Parser) (Statement, error) {
	var statement InsertStatement

	token := parser.lexer.NextToken()
	if token.Type != Into {
		return nil, fmt.Errorf("%w: expected INTO after INSERT", ErrFormat)
	}

	table, err := parseTableName(parser)
	if err != nil {
		return nil, err
	}
	statement.Table = table

	token = parser.lexer.NextToken()
	if token.Type == ParenOpen {
		statement.Columns, err = parseColumnList(parser)
		if err != nil {
			return nil, err
		}
		token = parser.lexer.NextToken()
	}

	if token.Type != Values {
		return nil, fmt.Errorf("%w: expected VALUES", ErrFormat)
	}

	token = parser.lexer.NextToken()
	if token.Type != ParenOpen {
		return nil, fmt.Errorf("%w: expected '(' after VALUES", ErrFormat)
	}

	statement.Values, err = parseValueList(parser)
	if err != nil {
		return nil, err
	}

	token = parser.lexer.NextToken()
	if token.Type != EOF {
		return nil, fmt.Errorf("%w: unexpected %s after statement", ErrFormat, token)
	}

	return statement, nil
}

func parseUpdate(parser *Parser) (Statement, error) {
	var statement UpdateStatement

	table, err := parseTableName(parser)
	if err != nil {
		return nil, err
	}
	statement.Table = table

	token := parser.lexer.NextToken()
	if token.Type != Set {
		return nil, fmt.Errorf("%w: expected SET after table name", ErrFormat)
	}

	for {
		token = parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, fmt.Errorf("%w: expected column name in SET clause", ErrFormat)
		}
		clause := SetClause{Column: token.Value}

		token = parser.lexer.NextToken()
		if token.Type != Equals {
			return nil, fmt.Errorf("%w: expected '=' after %q", ErrFormat, clause.Column)
		}

		value, err := parseValue(parser)
		if err != nil {
			return nil, err
		}
		clause.Value = value
		statement.Assignments = append(statement.Assignments, clause)

		token = parser.lexer.NextToken()
		if token.Type == Comma {
			continue
		}
		break
	}

	if token.Type == Where {
		statement.Where, err = parseWhere(parser)
		if err != nil {
			return nil, err
		}
		token = parser.lexer.NextToken()
	}

	if token.Type != EOF {
		return nil, fmt.Errorf("%w: unexpected %s after statement", ErrFormat, token)
	}

	return statement, nil
}

func parseDelete(parser *Parser) (Statement, error) {
	var statement DeleteStatement

	token := parser.lexer.NextToken()
	if token.Type != From {
		return nil, fmt.Errorf("%w: expected FROM after DELETE", ErrFormat)
	}

	table, err := parseTableName(parser)
	if err != nil {
		return nil, err
	}
	statement.Table = table

	token = parser.lexer.NextToken()
	if token.Type == Where {
		statement.Where, err = parseWhere(parser)
		if err != nil {
			return nil, err
		}
		token = parser.lexer.NextToken()
	}

	if token.Type != EOF {
		return nil, fmt.Errorf("%w: unexpected %s after statement", ErrFormat, token)
	}

	return statement, nil
}

// parseWhere reads AND-chained column comparisons. OR and grouping are not
// part of the grammar.
func parseWhere(parser *Parser) ([]core.Condition, error) {
	var conditions []core.Condition

	for {
		token := parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, fmt.Errorf("%w: expected column name in WHERE clause", ErrFormat)
		}
		condition := core.Condition{Column: token.Value}

		token = parser.lexer.NextToken()
		op, ok := compareOp(token.Type)
		if !ok {
			return nil, fmt.Errorf("%w: expected comparison operator after %q", ErrFormat, condition.Column)
		}
		condition.Op = op

		value, err := parseValue(parser)
		if err != nil {
			return nil, err
		}
		condition.Value = value
		conditions = append(conditions, condition)

		if parser.lexer.PeekToken().Type != And {
			return conditions, nil
		}
		parser.lexer.NextToken() // consume AND
	}
}

// ParseConditions parses a bare condition string like
// "age >= 18 and active = true" outside of a full statement.
func ParseConditions(conditionText string) ([]core.Condition, error) {
	parser := NewParser(conditionText)
	conditions, err := parseWhere(parser)
	if err != nil {
		return nil, err
	}
	if token := parser.lexer.NextToken(); token.Type != EOF {
		return nil, fmt.Errorf("%w: unexpected %s after conditions", ErrFormat, token)
	}
	return conditions, nil
}

func parseTableName(parser *Parser) (string, error) {
	token := parser.lexer.NextToken()
	if token.Type != Identifier {
		return "", fmt.Errorf("%w: expected table name, got %s", ErrFormat, token)
	}
	return token.Value, nil
}

func parseColumnList(parser *Parser) ([]string, error) {
	var columns []string

	for {
		token := parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, fmt.Errorf("%w: expected column name in column list", ErrFormat)
		}
		columns = append(columns, token.Value)

		token = parser.lexer.NextToken()
		if token.Type == ParenClose {
			return columns, nil
		}
		if token.Type != Comma {
			return nil, fmt.Errorf("%w: expected ',' or ')' in column list", ErrFormat)
		}
	}
}

func parseValueList(parser *Parser) ([]string, error) {
	var values []string

	for {
		value, err := parseValue(parser)
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		token := parser.lexer.NextToken()
		if token.Type == ParenClose {
			return values, nil
		}
		if token.Type != Comma {
			return nil, fmt.Errorf("%w: expected ',' or ')' in value list", ErrFormat)
		}
	}
}

// parseValue accepts quoted strings and bare literals. Quoted text keeps its
// case and spacing; the surrounding quotes are stripped by the lexer.
func parseValue(parser *Parser) (string, error) {
	token := parser.lexer.NextToken()
	switch token.Type {
	case String, Int, Float, Identifier, True, False:
		return token.Value, nil
	default:
		return "", fmt.Errorf("%w: expected value, got %s", ErrFormat, token)
	}
}

func compareOp(tokenType TokenType) (core.CompareOp, bool) {
	switch tokenType {
	case Equals:
		return core.Equals, true
	case NotEquals:
		return core.NotEquals, true
	case LessThan:
		return core.LessThan, true
	case LessThanOrEqual:
		return core.LessThanOrEqual, true
	case GreaterThan:
		return core.GreaterThan, true
	case GreaterThanOrEqual:
		return core.GreaterThanOrEqual, true
	default:
		return 0, false
	}
}
