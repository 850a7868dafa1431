//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"testing"

	"bytes"
	"os"
	"path/filepath"
)

func TestCommandExpand(t *testing.T) {
	table := map[string]struct {
		In    string
		Out   []string
		Error error
	}{
		"hello":  {`hello world`, []string{"hello", "world"}, nil},
		"setenv": {`hello ${MONKEY}`, []string{"hello", "monkey"}, nil},
		"oct":    {`\101`, []string{"A"}, nil},
		"esacpe": {`hello\ you\e[7m\z\e[m\r\n\101`, []string{"hello you\033[7mz\033[m\r\nA"}, nil},
		"quotes": {`"hello world" 'and you "too"'`, []string{"hello world", "and you \"too\""}, nil},
		"quoted": {`"hello 'nice' world" "you \'too"`, []string{"hello 'nice' world", "you 'too"}, nil},
		"multli": {`part.stl
select --first 13 --count 120
foo.uvj
`, []string{"part.stl", "select", "--first", "13", "--count", "120", "foo.uvj"}, nil},
	}

	os.Setenv("MONKEY", "monkey")

	for key, item := range table {
		reader := bytes.NewReader([]byte(item.In))
		args, err := CommandExpand(reader)
		if err != item.Error {
			t.Errorf("%v: expected %v, got %v", key, item.Error, err)
			continue
		}

		if err != nil {
			continue
		}

		if len(args) != len(item.Out) {
			t.Errorf("%v: expected len() %v, got %v", key, len(item.Out), len(args))
			continue
		}

		for n, arg := range args {
			if arg != item.Out[n] {
				t.Errorf("%v: expected [%v] %v, got %v", key, n, item.Out[n], arg)
				break
			}
		}
	}
}

func TestExpandArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmd.txt")
	err := os.WriteFile(path, []byte("primitive:box:1,2,3 info\n'out file.uvj'\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	args, err := ExpandArgs([]string{"-v", "@" + path, "@"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"-v", "primitive:box:1,2,3", "info", "out file.uvj", "@"}
	if len(args) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
	for n := range args {
		if args[n] != expected[n] {
			t.Errorf("[%v]: expected %v, got %v", n, expected[n], args[n])
		}
	}

	_, err = ExpandArgs([]string{"@" + filepath.Join(t.TempDir(), "missing.txt")})
	if err == nil {
		t.Errorf("expected an error for a missing command file")
	}
}
