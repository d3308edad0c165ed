package parser

import (
	"github.com/vidcmd/vidcmd/pkgs/ast"
	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
)

// Parser implements a recursive descent parser for vidcmd scripts with
// one token of lookahead and panic-mode recovery: a grammar failure skips
// tokens to the next statement boundary, leaves an Error node behind, and
// parsing continues, so every statement-shape problem in a script is
// reported in one pass.
//
// The parser owns the variable environment for the duration of one parse.
// A let binding evaluates its expression immediately and stores the result
// as a side effect of parsing, so forward references are unresolved.
type Parser struct {
	tokens []lexer.Token
	pos    int
	env    Env
	errors []*diag.Error
}

// New creates a parser over an already-lexed token stream. The stream is
// expected to end with an EOP token, which the lexer guarantees.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.EOP, Line: 1, Column: 1}}
	}
	return &Parser{
		tokens: tokens,
		env:    make(Env),
	}
}

// Env returns the environment populated while parsing. It is private to
// this parser instance; two parses never share one.
func (p *Parser) Env() Env { return p.env }

// Errors returns every error collected during the parse, in source order.
func (p *Parser) Errors() []*diag.Error { return p.errors }

// ParseProgram parses the whole token stream into a Program node. The
// parse always finishes; malformed statements appear as Error nodes.
func (p *Parser) ParseProgram() *ast.Node {
	root := ast.NewProgram()
	for p.current().Type != lexer.EOP {
		root.Children = append(root.Children, p.parseStatement())
	}
	return root
}

// current returns the token under the cursor. The cursor never moves past
// the trailing EOP token.
func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) check(typ lexer.TokenType) bool {
	return p.current().Type == typ
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// synchronize discards tokens until a statement boundary: a semicolon
// (consumed), a token that can start a statement (left for the caller), or
// end of program.
func (p *Parser) synchronize() {
	for p.current().Type != lexer.EOP {
		switch p.current().Type {
		case lexer.SEMICOLON:
			p.advance()
			return
		case lexer.LET, lexer.IF, lexer.KEYWORD:
			return
		}
		p.advance()
	}
}

// expect consumes the current token when it matches, otherwise records an
// UnexpectedToken error and synchronizes.
func (p *Parser) expect(typ lexer.TokenType) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	tok := p.current()
	got := tok.Value
	if tok.Type == lexer.EOP {
		got = "EOF"
	}
	p.errors = append(p.errors, diag.New(tok.Line, tok.Column, diag.UnexpectedToken,
		"Expected %s, got %s", typ, got))
	p.synchronize()
	return false
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.current().Type {
	case lexer.LET:
		return p.parseAssign()
	case lexer.IF:
		return p.parseIf()
	case lexer.KEYWORD:
		return p.parseCommand()
	}
	tok := p.current()
	p.errors = append(p.errors, diag.New(tok.Line, tok.Column, diag.InvalidStatement,
		"Expected let, if, or command"))
	p.synchronize()
	return ast.NewError()
}

// parseAssign parses: let ID = expr ;
//
// The expression is evaluated against the current environment as soon as
// the statement is syntactically complete, and the identifier is bound
// before any later statement parses. An evaluation failure is recoverable
// like any other statement error: it is recorded, no binding happens, and
// the statement becomes an Error node.
func (p *Parser) parseAssign() *ast.Node {
	if !p.expect(lexer.LET) {
		return ast.NewError()
	}
	varName := p.current().Value
	if !p.expect(lexer.ID) {
		return ast.NewError()
	}
	if !p.expect(lexer.ASSIGN) {
		return ast.NewError()
	}
	expr := p.parseExpression()
	if expr == nil {
		return ast.NewError()
	}
	if !p.expect(lexer.SEMICOLON) {
		return ast.NewError()
	}
	value, err := Evaluate(expr, p.env)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.NewError()
	}
	p.env[varName] = value
	return &ast.Node{Kind: ast.Let, VarName: varName, Expr1: expr}
}

// parseIf parses: if expr == expr then statement
//
// The guard expressions are stored unevaluated; they are evaluated once
// per execution of the node, at walk time. The guarded statement is parsed
// eagerly and attached as the node's single child.
func (p *Parser) parseIf() *ast.Node {
	if !p.expect(lexer.IF) {
		return ast.NewError()
	}
	left := p.parseExpression()
	if left == nil {
		return ast.NewError()
	}
	if !p.expect(lexer.EQUALS) {
		return ast.NewError()
	}
	right := p.parseExpression()
	if right == nil {
		return ast.NewError()
	}
	if !p.expect(lexer.THEN) {
		return ast.NewError()
	}
	stmt := p.parseStatement()
	return &ast.Node{Kind: ast.If, Expr1: left, Expr2: right, Children: []*ast.Node{stmt}}
}

// parseCommand parses the four media commands. frame and concat take two
// expressions, audio takes three, each followed by `to STRING ;`. play
// takes either one expression (whole clip) or three (bounded range),
// disambiguated by the semicolon after the first.
func (p *Parser) parseCommand() *ast.Node {
	cmd := p.current().Value
	cmdTok := p.current()
	if !p.expect(lexer.KEYWORD) {
		return ast.NewError()
	}

	switch cmd {
	case "frame", "concat":
		kind := ast.Frame
		if cmd == "concat" {
			kind = ast.Concat
		}
		expr1 := p.parseExpression()
		if expr1 == nil {
			return ast.NewError()
		}
		expr2 := p.parseExpression()
		if expr2 == nil {
			return ast.NewError()
		}
		if !p.expect(lexer.TO) {
			return ast.NewError()
		}
		dest := p.current().Value
		if !p.expect(lexer.STRING) {
			return ast.NewError()
		}
		if !p.expect(lexer.SEMICOLON) {
			return ast.NewError()
		}
		return &ast.Node{Kind: kind, Expr1: expr1, Expr2: expr2, Destination: dest}

	case "audio":
		expr1 := p.parseExpression()
		if expr1 == nil {
			return ast.NewError()
		}
		expr2 := p.parseExpression()
		if expr2 == nil {
			return ast.NewError()
		}
		expr3 := p.parseExpression()
		if expr3 == nil {
			return ast.NewError()
		}
		if !p.expect(lexer.TO) {
			return ast.NewError()
		}
		dest := p.current().Value
		if !p.expect(lexer.STRING) {
			return ast.NewError()
		}
		if !p.expect(lexer.SEMICOLON) {
			return ast.NewError()
		}
		return &ast.Node{Kind: ast.Audio, Expr1: expr1, Expr2: expr2, Expr3: expr3, Destination: dest}

	case "play":
		expr1 := p.parseExpression()
		if expr1 == nil {
			return ast.NewError()
		}
		if p.check(lexer.SEMICOLON) {
			p.advance()
			return &ast.Node{Kind: ast.Play, Expr1: expr1}
		}
		expr2 := p.parseExpression()
		if expr2 == nil {
			return ast.NewError()
		}
		expr3 := p.parseExpression()
		if expr3 == nil {
			return ast.NewError()
		}
		if !p.expect(lexer.SEMICOLON) {
			return ast.NewError()
		}
		return &ast.Node{Kind: ast.Play, Expr1: expr1, Expr2: expr2, Expr3: expr3}
	}

	p.errors = append(p.errors, diag.New(cmdTok.Line, cmdTok.Column, diag.UnknownCommand,
		"Unknown command: %s", cmd))
	p.synchronize()
	return ast.NewError()
}

// parseExpression collects one expression as a flat token run. Nested
// parentheses are resolved here by recursion and flattened, so the
// evaluator sees a plain operand/operator alternation. Returns nil after
// recording an error and synchronizing.
func (p *Parser) parseExpression() []lexer.Token {
	var expr []lexer.Token

	if p.check(lexer.LPAREN) {
		p.advance()
		expr = p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(lexer.RPAREN) {
			return nil
		}
	} else {
		if !p.checkOperand() {
			p.invalidExpression()
			return nil
		}
		expr = append(expr, p.current())
		p.advance()
	}

	for p.check(lexer.PLUS) || p.check(lexer.STAR) {
		expr = append(expr, p.current())
		p.advance()
		if p.check(lexer.LPAREN) {
			p.advance()
			sub := p.parseExpression()
			if sub == nil {
				return nil
			}
			if !p.expect(lexer.RPAREN) {
				return nil
			}
			expr = append(expr, sub...)
		} else {
			if !p.checkOperand() {
				p.invalidExpression()
				return nil
			}
			expr = append(expr, p.current())
			p.advance()
		}
	}
	return expr
}

func (p *Parser) checkOperand() bool {
	switch p.current().Type {
	case lexer.INT, lexer.STRING, lexer.TIME, lexer.ID:
		return true
	}
	return false
}

func (p *Parser) invalidExpression() {
	tok := p.current()
	p.errors = append(p.errors, diag.New(tok.Line, tok.Column, diag.InvalidExpression,
		"Expected number, string, time, or identifier"))
	p.synchronize()
}
