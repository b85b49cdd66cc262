// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/elsci/chemikaze/pkg/element"
)

func TestElementsCommand_Table(t *testing.T) {
	stdout, _, err := runCLI(t, Dependencies{}, "elements")
	if err != nil {
		t.Fatalf("elements returned error: %v", err)
	}

	for _, want := range []string{"ID", "SYMBOL", "BUCKET", "Br", "Ar"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table should contain %q", want)
		}
	}
}

func TestElementsCommand_JSON(t *testing.T) {
	stdout, _, err := runCLI(t, Dependencies{}, "elements", "--format", "json")
	if err != nil {
		t.Fatalf("elements returned error: %v", err)
	}

	var doc elementsDocument
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(doc.Elements) != element.Count {
		t.Fatalf("got %d elements, want %d", len(doc.Elements), element.Count)
	}

	first := doc.Elements[0]
	if first.Id != 0 || first.Symbol != "H" || first.Bucket != element.Hydrogen.Bucket() {
		t.Errorf("first element = %+v", first)
	}
	for i, e := range doc.Elements {
		if e.Id != i {
			t.Errorf("element %d has id %d", i, e.Id)
		}
		if e.Bucket < 0 || e.Bucket >= element.BucketCount {
			t.Errorf("%s bucket %d is out of range", e.Symbol, e.Bucket)
		}
	}
}
