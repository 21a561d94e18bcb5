package tree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ropekit/rope/text"
)

func textLeaf(t *testing.T, s string) *Node {
	t.Helper()
	tx, err := text.FromString(s)
	if err != nil {
		t.Fatalf("cannot build text %q: %v", s, err)
	}
	return NewText(tx)
}

func buildTree(t *testing.T, frags ...string) *Node {
	t.Helper()
	var root *Node
	pos := int64(0)
	for _, f := range frags {
		root = Insert(root, pos, textLeaf(t, f))
		pos += int64(len(f))
	}
	return root
}

func mustCheck(t *testing.T, root *Node) {
	t.Helper()
	if err := Check(root); err != nil {
		t.Fatalf("invariant check failed: %v", err)
	}
}

func TestInsertSingleLeaf(t *testing.T) {
	root := buildTree(t, "Hello World")
	if string(Bytes(root)) != "Hello World" {
		t.Errorf("content = %q", Bytes(root))
	}
	if !root.IsLeaf() {
		t.Errorf("single fragment should stay a leaf root")
	}
	mustCheck(t, root)
}

func TestInsertAppendMany(t *testing.T) {
	frags := []string{"aa", "bb", "cc", "dd", "ee", "ff", "gg", "hh", "ii", "jj", "kk", "ll"}
	root := buildTree(t, frags...)
	if string(Bytes(root)) != strings.Join(frags, "") {
		t.Errorf("content = %q", Bytes(root))
	}
	if err := CheckStrict(root); err != nil {
		t.Fatalf("strict check failed: %v", err)
	}
	if Height(root) < 2 {
		t.Errorf("tree should have split, height = %d", Height(root))
	}
}

func TestInsertMiddleSplitsLeaf(t *testing.T) {
	root := buildTree(t, "HelloWorld")
	root = Insert(root, 5, textLeaf(t, ", dear "))
	if string(Bytes(root)) != "Hello, dear World" {
		t.Errorf("content = %q", Bytes(root))
	}
	mustCheck(t, root)
}

func TestFindChar(t *testing.T) {
	root := buildTree(t, "Hello ", "World")
	if c := FindChar(root, 6); c != 'W' {
		t.Errorf("FindChar(6) = %c, want W", c)
	}
	if c := FindChar(root, 0); c != 'H' {
		t.Errorf("FindChar(0) = %c, want H", c)
	}
	if c := FindChar(root, 10); c != 'd' {
		t.Errorf("FindChar(10) = %c, want d", c)
	}
}

func TestEraseWithinLeafRoot(t *testing.T) {
	root := buildTree(t, "Hello World")
	root, err := Erase(root, 5, 11, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if string(Bytes(root)) != "Hello" {
		t.Errorf("content = %q", Bytes(root))
	}
	mustCheck(t, root)
}

func TestEraseMiddleOfLeafRoot(t *testing.T) {
	root := buildTree(t, "Hello World")
	root, err := Erase(root, 2, 9, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if string(Bytes(root)) != "Held" {
		t.Errorf("content = %q", Bytes(root))
	}
	mustCheck(t, root)
}

func TestEraseAll(t *testing.T) {
	root := buildTree(t, "abc", "def", "ghi")
	root, err := Erase(root, 0, 9, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if root != nil {
		t.Errorf("expected empty tree, got %q", Bytes(root))
	}
}

func TestEraseAcrossLeaves(t *testing.T) {
	frags := []string{"aaa", "bbb", "ccc", "ddd", "eee", "fff", "ggg", "hhh"}
	root := buildTree(t, frags...)
	root, err := Erase(root, 4, 20, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	want := "aaab" + "ghhh" // keeps [0,4) and [20,24)
	if string(Bytes(root)) != want {
		t.Errorf("content = %q, want %q", Bytes(root), want)
	}
	mustCheck(t, root)
}

func TestEraseBisectingCodePointFails(t *testing.T) {
	root := buildTree(t, "aäb") // ä is two bytes at offset 1
	_, err := Erase(root, 1, 2, CheckEncoding)
	if err == nil {
		t.Fatalf("expected encoding error")
	}
	root2 := buildTree(t, "aäb")
	root2, err = Erase(root2, 1, 3, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if string(Bytes(root2)) != "ab" {
		t.Errorf("content = %q", Bytes(root2))
	}
}

func TestEraseUncheckedAllowsBreakage(t *testing.T) {
	root := buildTree(t, "aäb")
	root, err := Erase(root, 1, 2, EncodingBreakageOK)
	if err != nil {
		t.Fatal(err)
	}
	if Size(root) != 3 {
		t.Errorf("size = %d, want 3", Size(root))
	}
}

func TestConcatKeepsContentAndChain(t *testing.T) {
	left := buildTree(t, "Hello ")
	right := buildTree(t, "World")
	root := Concat(left, right)
	if string(Bytes(root)) != "Hello World" {
		t.Errorf("content = %q", Bytes(root))
	}
	mustCheck(t, root)
}

func TestSliceLeafTextProducesRef(t *testing.T) {
	leaf := buildTree(t, "Hello World")
	leaf.incRef() // simulate sharing
	piece := SliceLeaf(leaf, 0, 5, true)
	if piece.Kind() != RefLeaf {
		t.Fatalf("slice of a shared text leaf should be a ref, got kind %d", piece.Kind())
	}
	if v, _ := piece.LeafView(); v.String() != "Hello" {
		t.Errorf("slice content = %q", v.String())
	}
	if leaf.Refs() != 2 {
		t.Errorf("target refs = %d, want 2 (owner + ref)", leaf.Refs())
	}
}

func TestSliceLeafExclusiveTextInPlace(t *testing.T) {
	leaf := buildTree(t, "Hello World")
	out := SliceLeaf(leaf, 6, 11, false)
	if out != leaf {
		t.Fatalf("exclusive text slice should mutate in place")
	}
	if out.Text().String() != "World" {
		t.Errorf("content = %q", out.Text().String())
	}
}

func TestSliceLeafRepeatedAligned(t *testing.T) {
	rv := text.Repeat(text.ViewOfString("ab"), 5)
	leaf := NewRepeated(rv)
	out := SliceLeaf(leaf, 2, 8, false)
	if out.Kind() != RepeatedLeaf {
		t.Fatalf("aligned repeated slice should stay repeated")
	}
	if out.Size() != 6 {
		t.Errorf("size = %d, want 6", out.Size())
	}
}

func TestSliceLeafRepeatedUnalignedMaterializes(t *testing.T) {
	rv := text.Repeat(text.ViewOfString("ab"), 5)
	leaf := NewRepeated(rv)
	out := SliceLeaf(leaf, 1, 6, false)
	if out.Kind() != TextLeaf {
		t.Fatalf("unaligned repeated slice should materialize, got kind %d", out.Kind())
	}
	if out.Text().String() != "babab" {
		t.Errorf("content = %q", out.Text().String())
	}
}

func TestCopyOnWritePreservesOriginal(t *testing.T) {
	frags := []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}
	root := buildTree(t, frags...)
	before := string(Bytes(root))

	root.incRef() // second version
	version := root
	version = Insert(version, 8, textLeaf(t, "XX"))
	if string(Bytes(root)) != before {
		t.Errorf("original changed: %q", Bytes(root))
	}
	if string(Bytes(version)) != "aaaabbbbXXccccddddeeee" {
		t.Errorf("version content = %q", Bytes(version))
	}
	mustCheck(t, version)

	version, err := Erase(version, 0, 4, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if string(Bytes(root)) != before {
		t.Errorf("original changed after erase: %q", Bytes(root))
	}
	if string(Bytes(version)) != "bbbbXXccccddddeeee" {
		t.Errorf("version content = %q", Bytes(version))
	}
}

func TestChainMatchesInOrder(t *testing.T) {
	frags := []string{"one ", "two ", "three ", "four ", "five ", "six ", "seven ", "eight ", "nine "}
	root := buildTree(t, frags...)
	// Check verifies the chain for exclusively owned trees.
	mustCheck(t, root)

	var err error
	root, err = Erase(root, 4, 12, CheckEncoding)
	if err != nil {
		t.Fatal(err)
	}
	mustCheck(t, root)
	if string(Bytes(root)) != "one e four five six seven eight nine " {
		t.Errorf("content = %q", Bytes(root))
	}
}

func TestRandomEditsAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	model := ""
	var root *Node
	alphabet := []string{"a", "bc", "def", "ghij", "klmno"}
	for step := 0; step < 400; step++ {
		if root == nil || rng.Intn(2) == 0 {
			frag := alphabet[rng.Intn(len(alphabet))]
			at := int64(0)
			if len(model) > 0 {
				at = int64(rng.Intn(len(model) + 1))
			}
			root = Insert(root, at, textLeaf(t, frag))
			model = model[:at] + frag + model[at:]
		} else if len(model) > 0 {
			lo := rng.Intn(len(model))
			hi := lo + rng.Intn(len(model)-lo)
			var err error
			root, err = Erase(root, int64(lo), int64(hi), CheckEncoding)
			if err != nil {
				t.Fatalf("step %d: erase [%d,%d): %v", step, lo, hi, err)
			}
			model = model[:lo] + model[hi:]
		}
		if got := string(Bytes(root)); got != model {
			t.Fatalf("step %d: content %q, want %q", step, got, model)
		}
		if err := Check(root); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
}

func TestRandomByteAccess(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	frags := []string{"lorem ", "ipsum ", "dolor ", "sit ", "amet ", "consectetur "}
	root := buildTree(t, frags...)
	content := string(Bytes(root))
	for i := 0; i < 200; i++ {
		pos := rng.Intn(len(content))
		if c := FindChar(root, int64(pos)); c != content[pos] {
			t.Fatalf("FindChar(%d) = %c, want %c", pos, c, content[pos])
		}
	}
}
