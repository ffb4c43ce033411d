package loaner

import "testing"

const matrixDoc = `<html><body>
<table>
  <thead><tr><th>Article</th><th>Updated</th></tr></thead>
  <tbody><tr><td>Unrelated</td><td>2024</td></tr></tbody>
</table>
<table>
  <thead><tr><th>Your Ship</th><th>Our Loaner(s)</th></tr></thead>
  <tbody>
    <tr><td>Aurora MR</td><td>Mustang Alpha and Avenger Titan</td></tr>
    <tr><td>Carrack</td><td>Freelancer MAX,
Constellation Aquila</td></tr>
    <tr><td>Mustang Alpha</td><td>N/A</td></tr>
    <tr><td></td><td>Orphan Loaner</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseMatrix(t *testing.T) {
	matrix, err := ParseMatrix(matrixDoc)
	if err != nil {
		t.Fatalf("ParseMatrix: %v", err)
	}

	if len(matrix) != 2 {
		t.Fatalf("expected 2 ships, got %d: %v", len(matrix), matrix)
	}

	aurora := matrix["aurora mr"]
	if len(aurora) != 2 || aurora[0] != "Mustang Alpha" || aurora[1] != "Avenger Titan" {
		t.Errorf(`matrix["aurora mr"] = %v, want [Mustang Alpha, Avenger Titan]`, aurora)
	}

	carrack := matrix["carrack"]
	if len(carrack) != 2 || carrack[0] != "Freelancer MAX" || carrack[1] != "Constellation Aquila" {
		t.Errorf(`matrix["carrack"] = %v, want newline-separated loaners split`, carrack)
	}

	if _, ok := matrix["mustang alpha"]; ok {
		t.Error("a row whose only token is N/A must be dropped")
	}
}

func TestParseMatrixHeaderCaseAndOrder(t *testing.T) {
	doc := `<table>
<tr><th>OUR LOANER(S)</th><th>YOUR SHIP</th></tr>
</table>`
	// Header match is case-insensitive and order-independent; with a
	// matching table but no body rows the result is empty, not an error.
	matrix, err := ParseMatrix(doc)
	if err != nil {
		t.Fatalf("ParseMatrix: %v", err)
	}
	if len(matrix) != 0 {
		t.Errorf("expected empty matrix, got %v", matrix)
	}
}

func TestParseMatrixNoTable(t *testing.T) {
	matrix, err := ParseMatrix(`<html><body><p>maintenance</p></body></html>`)
	if err != nil {
		t.Fatalf("ParseMatrix: %v", err)
	}
	if len(matrix) != 0 {
		t.Errorf("missing table should yield an empty map, got %v", matrix)
	}
}

func TestSplitLoaners(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"and separator", "Mustang Alpha and Avenger Titan", []string{"Mustang Alpha", "Avenger Titan"}},
		{"comma separator", "A, B,C", []string{"A", "B", "C"}},
		{"newline separator", "A\nB", []string{"A", "B"}},
		{"mixed with placeholder", "A and N/A, B", []string{"A", "B"}},
		{"word containing and kept whole", "Islander", []string{"Islander"}},
		{"only placeholder", "N/A", nil},
		{"empty", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLoaners(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLoaners(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
