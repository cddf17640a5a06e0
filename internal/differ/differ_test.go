// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/graphdiff/internal/comparator"
	"github.com/tfctl/graphdiff/internal/flatten"
	"github.com/tfctl/graphdiff/internal/property"
	"github.com/tfctl/graphdiff/internal/serializer"
)

type Address struct {
	Street  *string
	ZipCode int
}

type Credential struct {
	Password string
}

func (c Credential) Compare(other Credential) int {
	return strings.Compare(c.Password, other.Password)
}

func (c Credential) String() string {
	return fmt.Sprintf("Credential [password=%s]", c.Password)
}

type User struct {
	Name        string
	Address     Address
	Credentials []Credential
	Attributes  map[string]string
}

type Tags []string

type Vault map[Credential]string

var (
	texts   = serializer.ToString("")
	numbers = serializer.For(strconv.Itoa)
)

// alwaysEqual matches anything and orders nothing.
var alwaysEqual = comparator.Func(
	func(any) bool { return true },
	func(a, b any) int { return 0 },
)

func ptr[T any](v T) *T {
	return &v
}

func scalars() Configuration {
	return NewConfiguration().
		UseSerializer(texts).
		UseSerializer(numbers).
		UseNaturalOrderingFor(reflect.TypeFor[string]()).
		UseNaturalOrderingFor(reflect.TypeFor[int]())
}

func mustNew(t *testing.T, cfg Configuration) *Differ {
	t.Helper()
	d, err := New(cfg)
	require.NoError(t, err)
	return d
}

func TestDiff_Address(t *testing.T) {
	d := mustNew(t, scalars())

	base := Address{Street: ptr("street"), ZipCode: 12345}
	working := Address{Street: ptr("something new"), ZipCode: 12345}

	lines, err := d.Diff(base, working)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,1 +1,1 @@",
		"-Address.street='street'",
		"+Address.street='something new'",
	}, lines)
}

func TestDiff_SelfDiffIsEmpty(t *testing.T) {
	d := mustNew(t, scalars().UseSerializer(serializer.Stringer()).UseNaturalOrderingFor(reflect.TypeFor[Credential]()))

	u := &User{
		Name:        "alice",
		Address:     Address{Street: ptr("main"), ZipCode: 1},
		Credentials: []Credential{{"b"}, {"a"}},
		Attributes:  map[string]string{"role": "admin", "team": "core"},
	}

	lines, err := d.Diff(u, u)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDiff_NullHandling(t *testing.T) {
	d := mustNew(t, scalars())

	tests := []struct {
		name     string
		street   *string
		expected string
	}{
		{"null", nil, "+Address.street=null"},
		{"empty", ptr(""), "+Address.street=''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := d.Diff(nil, Address{Street: tt.street, ZipCode: 1})
			require.NoError(t, err)

			assert.Equal(t, []string{
				"--- base",
				"+++ working",
				"@@ -1,0 +1,2 @@",
				tt.expected,
				"+Address.zipCode='1'",
			}, lines)
		})
	}
}

func TestDiff_SerializerBeforeSequence(t *testing.T) {
	tags := serializer.For(func(t Tags) string {
		return strings.Join(t, "|")
	})
	d := mustNew(t, scalars().UseSerializer(tags))

	lines, err := d.Diff(nil, Tags{"a", "b"})
	require.NoError(t, err)

	assert.Contains(t, lines, "+Tags='a|b'")
	for _, line := range lines {
		assert.NotContains(t, line, "[0]")
	}
}

func TestDiff_NaturalOrderingBeforeComparator(t *testing.T) {
	cfg := NewConfiguration().
		UseSerializer(serializer.Stringer()).
		UseComparator(alwaysEqual).
		UseNaturalOrderingFor(reflect.TypeFor[Credential]())
	d := mustNew(t, cfg)

	lines, err := d.Diff(nil, []Credential{{"password2"}, {"password1"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,0 +1,2 @@",
		"+Slice[0]='Credential [password=password1]'",
		"+Slice[1]='Credential [password=password2]'",
	}, lines)
}

func TestDiff_MissingSerializer(t *testing.T) {
	cfg := NewConfiguration().
		UseSerializer(texts).
		ExcludeProperty("credentials").
		ExcludeProperty("attributes")
	d := mustNew(t, cfg)

	_, err := d.Diff(nil, User{Name: "alice", Address: Address{ZipCode: 1}})

	require.ErrorIs(t, err, flatten.ErrMissingSerializer)
	assert.Contains(t, err.Error(), "at 'User.address.zipCode'")
	assert.EqualError(t, err, "could not find serializer for 'int' at 'User.address.zipCode'")
}

func TestDiff_MapKeyOrdering(t *testing.T) {
	cfg := NewConfiguration().
		UseSerializer(serializer.Stringer()).
		UseSerializer(texts).
		UseNaturalOrderingFor(reflect.TypeFor[Credential]())
	d := mustNew(t, cfg)

	tests := []struct {
		name    string
		working any
		label   string
	}{
		{"unnamed map", map[Credential]string{{"bbbb"}: "bar", {"aaaa"}: "foo"}, "Map"},
		{"named map", Vault{{"bbbb"}: "bar", {"aaaa"}: "foo"}, "Vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := d.Diff(nil, tt.working)
			require.NoError(t, err)

			assert.Equal(t, []string{
				"--- base",
				"+++ working",
				"@@ -1,0 +1,2 @@",
				"+" + tt.label + "['Credential [password=aaaa]']='foo'",
				"+" + tt.label + "['Credential [password=bbbb]']='bar'",
			}, lines)
		})
	}
}

func TestDiff_MissingComparator(t *testing.T) {
	d := mustNew(t, scalars().UseSerializer(serializer.Stringer()))

	_, err := d.Diff(nil, User{Credentials: []Credential{{"a"}}})
	require.ErrorIs(t, err, flatten.ErrMissingComparator)
	assert.EqualError(t, err, "could not find comparator for iterable at 'User.credentials'")

	_, err = d.Diff(nil, Vault{{"a"}: "b"})
	require.ErrorIs(t, err, flatten.ErrMissingComparator)
	assert.EqualError(t, err, "could not find comparator for map keys of type 'Credential' at 'Vault'")
}

type failingEnumerator struct{}

func (failingEnumerator) Properties(reflect.Type) []property.Property {
	return []property.Property{{
		Name: "boom",
		Get: func(reflect.Value) (any, error) {
			return nil, errors.New("getter panicked")
		},
	}}
}

func TestDiff_UnreadableProperty(t *testing.T) {
	d := mustNew(t, scalars().UsePropertyEnumerator(failingEnumerator{}))

	_, err := d.Diff(nil, Address{})

	var unreadable *flatten.UnreadablePropertyError
	require.ErrorAs(t, err, &unreadable)
	assert.Equal(t, "Address.boom", unreadable.Path)
	assert.ErrorIs(t, err, flatten.ErrUnreadableProperty)
}

type Kind string

type Event struct {
	time.Time
	Kind
	Name string
}

type Audit struct {
	Created string
}

type Owner struct {
	*Audit
	Name string
}

func TestDiff_EmbeddedWithoutPromotedFields(t *testing.T) {
	d := mustNew(t, scalars().
		UseSerializer(serializer.ToString(Kind(""))).
		UseSerializer(serializer.For(func(at time.Time) string { return strconv.FormatInt(at.Unix(), 10) })))

	base := Event{Time: time.Unix(0, 0), Kind: "deploy", Name: "release"}
	working := Event{Time: time.Unix(100, 0), Kind: "rollback", Name: "release"}

	lines, err := d.Diff(base, working)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,2 +1,2 @@",
		"-Event.time='0'",
		"-Event.kind='deploy'",
		"+Event.time='100'",
		"+Event.kind='rollback'",
	}, lines)
}

func TestDiff_EmbeddedStructWithoutSerializer(t *testing.T) {
	d := mustNew(t, scalars().UseSerializer(serializer.ToString(Kind(""))))

	_, err := d.Diff(nil, Event{Kind: "deploy", Name: "release"})

	require.ErrorIs(t, err, flatten.ErrMissingSerializer)
	assert.Contains(t, err.Error(), "'Event.time'")
}

func TestDiff_NilEmbeddedPointer(t *testing.T) {
	d := mustNew(t, scalars())

	lines, err := d.Diff(Owner{Audit: &Audit{Created: "today"}, Name: "alice"}, Owner{Name: "alice"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,1 +1,1 @@",
		"-Owner.created='today'",
		"+Owner.created=null",
	}, lines)
}

func TestDiff_PointerElements(t *testing.T) {
	tests := []struct {
		name       string
		registered reflect.Type
	}{
		{"value type registered", reflect.TypeFor[Credential]()},
		{"pointer type registered", reflect.TypeFor[*Credential]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustNew(t, scalars().UseSerializer(serializer.Stringer()).UseNaturalOrderingFor(tt.registered))

			lines, err := d.Diff(nil, []*Credential{{"password2"}, nil, {"password1"}})
			require.NoError(t, err)

			assert.Equal(t, []string{
				"--- base",
				"+++ working",
				"@@ -1,0 +1,3 @@",
				"+Slice[0]=null",
				"+Slice[1]='Credential [password=password1]'",
				"+Slice[2]='Credential [password=password2]'",
			}, lines)
		})
	}
}

func TestDiff_PointerToScalarElements(t *testing.T) {
	d := mustNew(t, scalars())

	lines, err := d.Diff(nil, []*string{ptr("b"), ptr("a")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,0 +1,2 @@",
		"+Slice[0]='a'",
		"+Slice[1]='b'",
	}, lines)
}

func TestDiff_NilWorking(t *testing.T) {
	d := mustNew(t, scalars())

	for _, working := range []any{nil, (*Address)(nil)} {
		_, err := d.Diff(Address{}, working)
		assert.ErrorIs(t, err, ErrNilWorking)
	}
}

func TestDiff_EmptyWorkingDocument(t *testing.T) {
	d := mustNew(t, scalars())

	lines, err := d.Diff([]string{"a"}, []string{})
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = d.Diff(nil, map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDiff_Labels(t *testing.T) {
	d := mustNew(t, scalars().UseBaseLabel("before").UseWorkingLabel("after"))

	lines, err := d.Diff(nil, Address{ZipCode: 1})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "--- before", lines[0])
	assert.Equal(t, "+++ after", lines[1])
}

func TestDiff_ZeroConfiguration(t *testing.T) {
	d := mustNew(t, Configuration{}.UseSerializer(texts).UseSerializer(numbers))

	lines, err := d.Diff(nil, Address{ZipCode: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,0 +1,2 @@",
		"+Address.street=null",
		"+Address.zipCode='1'",
	}, lines)
}

func TestDiff_TypeProperty(t *testing.T) {
	d := mustNew(t, scalars().UseTypeProperty("class"))

	lines, err := d.Flatten(Address{ZipCode: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Address.class='github.com/tfctl/graphdiff/internal/differ.Address'",
		"Address.street=null",
		"Address.zipCode='1'",
	}, lines)
}

func TestDiff_DifferentRootTypes(t *testing.T) {
	d := mustNew(t, scalars())

	lines, err := d.Diff([]string{"a"}, Tags{"a"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--- base",
		"+++ working",
		"@@ -1,1 +1,1 @@",
		"-Slice[0]='a'",
		"+Tags[0]='a'",
	}, lines)
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
	}{
		{"nil serializer", NewConfiguration().UseSerializer(nil)},
		{"nil comparator", NewConfiguration().UseComparator(nil)},
		{"unorderable natural type", NewConfiguration().UseNaturalOrderingFor(reflect.TypeFor[Address]())},
		{"nil natural type", NewConfiguration().UseNaturalOrderingFor(nil)},
		{
			"type property with custom enumerator",
			NewConfiguration().UseTypeProperty("class").UsePropertyEnumerator(property.NewReflector()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.cfg)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestConfiguration_CopyOnWrite(t *testing.T) {
	shared := NewConfiguration().UseSerializer(texts).ExcludeProperty("a")

	left := shared.UseSerializer(numbers).ExcludeProperty("left")
	right := shared.UseSerializer(serializer.Stringer()).ExcludeProperty("right")

	assert.Len(t, shared.serializers, 1)
	assert.Equal(t, []string{"a"}, shared.excluded)
	assert.Equal(t, []string{"a", "left"}, left.excluded)
	assert.Equal(t, []string{"a", "right"}, right.excluded)
	assert.Len(t, left.serializers, 2)
	assert.Len(t, right.serializers, 2)

	relabelled := shared.UseBaseLabel("x")
	assert.Equal(t, "x", relabelled.BaseLabel())
	assert.Equal(t, DefaultBaseLabel, shared.BaseLabel())
}

func TestRootLabel(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{Address{}, "Address"},
		{&Address{}, "Address"},
		{ptr(&Address{}), "Address"},
		{Tags{}, "Tags"},
		{[]int{}, "Slice"},
		{[2]int{}, "Array"},
		{map[string]int{}, "Map"},
		{Vault{}, "Vault"},
		{"s", "string"},
		{struct{}{}, "struct"},
		{nil, "Nil"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, RootLabel(tt.value))
		})
	}
}

func TestDiff_Concurrent(t *testing.T) {
	d := mustNew(t, scalars())
	base := map[int]string{1: "a", 2: "b", 3: "c"}
	working := map[int]string{1: "a", 2: "B", 4: "d"}

	expected, err := d.Diff(base, working)
	require.NoError(t, err)

	results := make([][]string, 32)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			lines, err := d.Diff(base, working)
			results[i] = lines
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, lines := range results {
		assert.Equal(t, expected, lines)
	}
}
