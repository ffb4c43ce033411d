package loaner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var andSplitRe = regexp.MustCompile(`(?i)\sand\s`)

// ParseMatrix extracts the ship → loaners mapping from the support-site
// document. The table carries no stable id across site redesigns, so it
// is located by its header cells: the first table whose headers include
// both "YOUR SHIP" and "OUR LOANER(S)" (case-insensitive, any order).
// When no table matches, the result is an empty map, not an error;
// loaners are an enhancement, not a required dataset.
func ParseMatrix(doc string) (map[string][]string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	matrix := make(map[string][]string)

	table := findMatrixTable(root)
	if table == nil {
		return matrix, nil
	}

	for _, row := range findAll(table, "tr") {
		cells := findAll(row, "td")
		if len(cells) < 2 {
			continue
		}
		shipName := strings.TrimSpace(nodeText(cells[0]))
		loaners := splitLoaners(nodeText(cells[1]))
		if shipName == "" || len(loaners) == 0 {
			continue
		}
		matrix[strings.ToLower(shipName)] = loaners
	}

	return matrix, nil
}

// splitLoaners breaks a loaner cell into individual ship names: the
// source separates entries with newlines, the word "and", and commas.
// Empty tokens and the "N/A" placeholder are dropped.
func splitLoaners(text string) []string {
	text = strings.ReplaceAll(text, "\n", ",")
	text = andSplitRe.ReplaceAllString(text, ",")

	var loaners []string
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" || token == "N/A" {
			continue
		}
		loaners = append(loaners, token)
	}
	return loaners
}

func findMatrixTable(n *html.Node) *html.Node {
	for _, table := range findAll(n, "table") {
		var yourShip, ourLoaners bool
		for _, th := range findAll(table, "th") {
			header := strings.ToUpper(strings.TrimSpace(nodeText(th)))
			switch {
			case strings.Contains(header, "YOUR SHIP"):
				yourShip = true
			case strings.Contains(header, "OUR LOANER(S)"):
				ourLoaners = true
			}
		}
		if yourShip && ourLoaners {
			return table
		}
	}
	return nil
}

// findAll returns all descendant elements with the given tag, in
// document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// nodeText concatenates the text content of a node's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
