package models

// Node is one element of a card document. The set of implementations is
// closed: Card, Section, Text, Actions, Button, LinkButton and Select.
type Node interface {
	node()
}

// ButtonStyle hints at how a platform should emphasise a button
type ButtonStyle string

const (
	ButtonDefault ButtonStyle = ""
	ButtonPrimary ButtonStyle = "primary"
	ButtonDanger  ButtonStyle = "danger"
)

// Card is the root of a card document
type Card struct {
	Title    string
	Children []Node
}

// Section groups child nodes
type Section struct {
	Children []Node
}

// Text is a block of plain text
type Text struct {
	Content string
}

// Actions holds interactive controls. Only controls inside an Actions node
// are rendered as buttons.
type Actions struct {
	Children []Node
}

// Button triggers a callback carrying ID and Value
type Button struct {
	ID    string
	Label string
	Value string
	Style ButtonStyle
}

// LinkButton opens an external URL
type LinkButton struct {
	Label string
	URL   string
}

// Select lets the user pick one of Options
type Select struct {
	ID      string
	Label   string
	Options []SelectOption
}

// SelectOption is one entry of a Select
type SelectOption struct {
	Label string
	Value string
}

func (Card) node()       {}
func (Section) node()    {}
func (Text) node()       {}
func (Actions) node()    {}
func (Button) node()     {}
func (LinkButton) node() {}
func (Select) node()     {}
