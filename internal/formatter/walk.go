package formatter

import (
	"github.com/mixelka/chatadapter/pkg/models"
)

// eachActions calls fn for every Actions container under node, depth-first
// in document order. Containers nested inside an Actions node are visited
// right after their parent.
func eachActions(node models.Node, fn func(models.Actions) error) error {
	if actions, ok := asActions(node); ok {
		if err := fn(actions); err != nil {
			return err
		}
	}
	for _, child := range children(node) {
		if err := eachActions(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func asActions(node models.Node) (models.Actions, bool) {
	switch n := node.(type) {
	case models.Actions:
		return n, true
	case *models.Actions:
		if n != nil {
			return *n, true
		}
	}
	return models.Actions{}, false
}

func children(node models.Node) []models.Node {
	switch n := node.(type) {
	case models.Card:
		return n.Children
	case *models.Card:
		if n != nil {
			return n.Children
		}
	case models.Section:
		return n.Children
	case *models.Section:
		if n != nil {
			return n.Children
		}
	case models.Actions:
		return n.Children
	case *models.Actions:
		if n != nil {
			return n.Children
		}
	}
	return nil
}

// control unwraps pointer forms of the leaf controls
func control(node models.Node) models.Node {
	switch n := node.(type) {
	case *models.Button:
		if n != nil {
			return *n
		}
	case *models.LinkButton:
		if n != nil {
			return *n
		}
	case *models.Select:
		if n != nil {
			return *n
		}
	case *models.Text:
		if n != nil {
			return *n
		}
	}
	return node
}
