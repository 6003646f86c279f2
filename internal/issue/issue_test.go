// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCatalogComplete(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != int(ScriptExecutionFailedId) {
		t.Fatalf("len(Values()) = %d, want %d", len(all), ScriptExecutionFailedId)
	}
	for i, is := range all {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want ordered ids", i, is.Id())
		}
		if is.Title() == "" || strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty title or body", is.Id())
		}
		if Get(is.Id()) != is {
			t.Errorf("Get(%d) does not return the catalog entry", is.Id())
		}
	}
	if Get(Id(999)) != nil {
		t.Error("Get(999) != nil")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(ScriptExecutionFailedId).Markdown()
	if !strings.HasPrefix(md, "# Script execution failed!") {
		t.Errorf("Markdown() heading = %q", strings.SplitN(md, "\n", 2)[0])
	}
	if !strings.Contains(md, "## See also") {
		t.Error("Markdown() lacks the links section")
	}
	if strings.Contains(Get(CommandNotFoundId).Markdown(), "See also") {
		t.Error("guide without links rendered a links section")
	}

	links := Get(ScriptExecutionFailedId).Links()
	links[0] = "mutated"
	if Get(ScriptExecutionFailedId).Links()[0] == "mutated" {
		t.Error("Links() exposes internal state")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(CommandNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Command not found!") {
		t.Errorf("Render() output lacks title:\n%s", out)
	}
}

func TestActionableError(t *testing.T) {
	t.Parallel()

	root := errors.New("no such file")
	mid := fmt.Errorf("open manifest: %w", root)
	err := New("load manifest",
		Resource("cliroute.cue"),
		Hint("Run 'cliroute check'", "Pass --manifest"),
		WithGuide(ManifestNotFoundId),
		Cause(mid))

	if got, want := err.Error(), "failed to load manifest: cliroute.cue: open manifest: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, root) {
		t.Error("errors.Is(err, root) = false")
	}

	short := err.Format(false)
	if !strings.Contains(short, "\n  • Pass --manifest") || strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) = %q", short)
	}
	long := err.Format(true)
	if !strings.Contains(long, "1. open manifest: no such file") || !strings.Contains(long, "2. no such file") {
		t.Errorf("Format(true) = %q", long)
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if g := GuideOf(wrapped); g == nil || g.Id() != ManifestNotFoundId {
		t.Errorf("GuideOf() = %v", g)
	}
	if GuideOf(root) != nil {
		t.Error("GuideOf(plain error) != nil")
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	if Wrap(nil, "x") != nil {
		t.Error("Wrap(nil) != nil")
	}
	err := Wrap(errors.New("boom"), "run script", Resource("deploy"))
	if err.Error() != "failed to run script: deploy: boom" {
		t.Errorf("Wrap() = %q", err)
	}
	if New("op").Format(true) != "failed to op" {
		t.Errorf("bare Format = %q", New("op").Format(true))
	}
}
