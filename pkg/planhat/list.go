package planhat

import (
	"encoding/json"
	"fmt"
)

// ObjectList is an ordered, kind-homogeneous collection of objects. The
// element kind is undetermined on an empty list and fixed by the first
// element inserted; once established it never changes, and inserting an
// object of any other kind fails.
type ObjectList struct {
	kind  Kind
	items []*Object
}

// NewObjectList builds a list from the given objects. The element kind is
// taken from the first object; a mixed-kind argument fails.
func NewObjectList(objects ...*Object) (*ObjectList, error) {
	list := &ObjectList{}

	err := list.Extend(objects...)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// newListOfKind builds a list with the element kind already established,
// so an empty result stays typed. Callers guarantee homogeneity.
func newListOfKind(kind Kind, items []*Object) *ObjectList {
	return &ObjectList{kind: kind, items: items}
}

// Kind returns the established element kind, or "" while undetermined.
func (l *ObjectList) Kind() Kind {
	return l.kind
}

// Len returns the number of elements.
func (l *ObjectList) Len() int {
	return len(l.items)
}

// At returns the element at index i.
func (l *ObjectList) At(i int) *Object {
	return l.items[i]
}

// Objects returns the underlying element slice.
func (l *ObjectList) Objects() []*Object {
	return l.items
}

// checkKind validates obj against the established element kind, fixing
// the kind on first insertion.
func (l *ObjectList) checkKind(obj *Object) error {
	if obj == nil {
		return &TypeMismatchError{Want: "a Planhat object", Got: "nil"}
	}

	if l.kind == "" {
		l.kind = obj.kind

		return nil
	}

	if obj.kind != l.kind {
		return &TypeMismatchError{Want: l.kind.Singular(), Got: obj.kind.Singular()}
	}

	return nil
}

// Append adds an object to the end of the list.
func (l *ObjectList) Append(obj *Object) error {
	err := l.checkKind(obj)
	if err != nil {
		return err
	}

	l.items = append(l.items, obj)

	return nil
}

// Extend appends each object in order. On a kind mismatch the list keeps
// the elements appended before the offending one.
func (l *ObjectList) Extend(objects ...*Object) error {
	for _, obj := range objects {
		err := l.Append(obj)
		if err != nil {
			return err
		}
	}

	return nil
}

// Insert places an object at index i, shifting later elements right.
func (l *ObjectList) Insert(i int, obj *Object) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("planhat: insert index %d out of range [0, %d]", i, len(l.items))
	}

	err := l.checkKind(obj)
	if err != nil {
		return err
	}

	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = obj

	return nil
}

// Remove deletes the first element that IsSameObject reports equal to
// obj. It fails with a not-found error when no element matches; the list
// is unchanged in that case.
func (l *ObjectList) Remove(obj *Object) error {
	err := l.checkMember(obj)
	if err != nil {
		return err
	}

	for i, item := range l.items {
		if item.IsSameObject(obj) {
			l.items = append(l.items[:i], l.items[i+1:]...)

			return nil
		}
	}

	idType, id := obj.identity()

	return &NotFoundError{Kind: l.kind, IDType: idType, ID: id}
}

// Contains reports whether any element IsSameObject-matches obj. An obj
// of a different kind than the list's established kind is a type error.
func (l *ObjectList) Contains(obj *Object) (bool, error) {
	err := l.checkMember(obj)
	if err != nil {
		return false, err
	}

	for _, item := range l.items {
		if item.IsSameObject(obj) {
			return true, nil
		}
	}

	return false, nil
}

// checkMember validates an argument object without fixing the element
// kind: membership questions on an untyped list simply find nothing.
func (l *ObjectList) checkMember(obj *Object) error {
	if obj == nil {
		return &TypeMismatchError{Want: "a Planhat object", Got: "nil"}
	}

	if l.kind != "" && obj.kind != l.kind {
		return &TypeMismatchError{Want: l.kind.Singular(), Got: obj.kind.Singular()}
	}

	return nil
}

// FindByID returns the first element whose Planhat-native ID equals id.
// A miss is a not-found error, never a nil return.
func (l *ObjectList) FindByID(id string) (*Object, error) {
	return l.find(PlanhatID, id)
}

// FindBySourceID returns the first element whose source ID equals id.
func (l *ObjectList) FindBySourceID(id string) (*Object, error) {
	return l.find(SourceID, id)
}

// FindByExternalID returns the first element whose external ID equals id.
func (l *ObjectList) FindByExternalID(id string) (*Object, error) {
	return l.find(ExternalID, id)
}

// FindByIDType looks up id under an explicitly chosen identifier variant.
// An IDType outside the known set fails with ErrInvalidIDType, distinct
// from the not-found error of a failed lookup.
func (l *ObjectList) FindByIDType(id string, idType IDType) (*Object, error) {
	if !idType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIDType, string(idType))
	}

	return l.find(idType, id)
}

func (l *ObjectList) find(idType IDType, id string) (*Object, error) {
	for _, item := range l.items {
		if item.identityField(idType) == id {
			return item, nil
		}
	}

	return nil, &NotFoundError{Kind: l.kind, IDType: idType, ID: id}
}

// FindByCompanyID returns a new list of every element owned by the given
// company. This is a filter, not a lookup: an empty result is not an
// error. It is only defined for company-owned kinds; anything else is a
// type error.
func (l *ObjectList) FindByCompanyID(companyID string) (*ObjectList, error) {
	if l.kind == "" {
		return nil, ErrUntypedList
	}

	if !l.kind.CompanyOwned() {
		return nil, &TypeMismatchError{
			Want: "a company-owned kind",
			Got:  l.kind.Singular(),
		}
	}

	matches := newListOfKind(l.kind, nil)

	for _, item := range l.items {
		if item.CompanyID() == companyID {
			matches.items = append(matches.items, item)
		}
	}

	return matches, nil
}

// ToSerializable returns the un-encoded array form: the serializable view
// of every element, in order.
func (l *ObjectList) ToSerializable() []map[string]any {
	out := make([]map[string]any, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, item.ToSerializable())
	}

	return out
}

// MarshalJSON renders the list as a JSON array of serializable views.
func (l *ObjectList) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(l.items) //nolint:wrapcheck // marshal errors pass through
}

// Encode renders the list as UTF-8 JSON bytes for a batch request body.
func (l *ObjectList) Encode() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding %s list: %w", l.kind.Singular(), err)
	}

	return data, nil
}

// URLPath returns the endpoint path of the list's element kind. It is
// undefined on an untyped list.
func (l *ObjectList) URLPath() (string, error) {
	if l.kind == "" {
		return "", ErrUntypedList
	}

	return l.kind.URLPath()
}

// Slice returns a new list sharing elements in [from, to).
func (l *ObjectList) Slice(from, to int) *ObjectList {
	if from < 0 {
		from = 0
	}

	if to > len(l.items) {
		to = len(l.items)
	}

	if from >= to {
		return newListOfKind(l.kind, nil)
	}

	return newListOfKind(l.kind, l.items[from:to])
}
