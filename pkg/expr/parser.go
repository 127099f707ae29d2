package expr

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(ops ...byte) (byte, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return 0, false
	}
	for _, op := range ops {
		if t.op == op {
			p.pos++
			return op, true
		}
	}
	return 0, false
}

// parse builds the tree for:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = atom [ "^" unary ]
//	atom    = number | "x" | "(" sum ")"
func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, invalid("empty expression")
	}

	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, invalid("unexpected %s at position %d", describe(t), t.pos)
	}
	return n, nil
}

func (p *parser) sum() (node, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp('+', '-')
		if !ok {
			return left, nil
		}
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) product() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp('*', '/')
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	if op, ok := p.acceptOp('+', '-'); ok {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negNode{sign: op, inner: inner}, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOp('^'); ok {
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) atom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode{v: t.val}, nil
	case tokVar:
		return varNode{}, nil
	case tokLParen:
		inner, err := p.sum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, invalid("missing ')' at position %d", closing.pos)
		}
		return inner, nil
	}
	return nil, invalid("unexpected %s at position %d", describe(t), t.pos)
}

func describe(t token) string {
	switch t.kind {
	case tokNumber:
		return "number"
	case tokVar:
		return "variable"
	case tokOp:
		return "operator '" + string(t.op) + "'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "end of expression"
}
