package event

import (
	"reflect"
	"sync"
)

// Group can be embedded into a struct of events to link all of its events at once.
type Group[GroupType any, GroupPtrType groupPtr[GroupType, GroupPtrType]] struct {
	linkChanged     *Event1[GroupPtrType]
	linkChangedOnce sync.Once
}

// CreateGroupConstructor wraps newFunc into a constructor that links the new group to the optional target.
func CreateGroupConstructor[GroupType any, GroupPtrType groupPtr[GroupType, GroupPtrType]](newFunc func() GroupPtrType) func(...GroupPtrType) GroupPtrType {
	return func(linkTargets ...GroupPtrType) GroupPtrType {
		group := newFunc()
		group.onLinkChanged().Hook(func(target GroupPtrType) {
			linkFields[GroupType](group, target)
		})

		if len(linkTargets) > 0 {
			group.LinkTo(linkTargets[0])
		}

		return group
	}
}

// LinkTo makes every event of the group fire whenever the matching event of target fires. Nil removes the link.
func (g *Group[GroupType, GroupPtrType]) LinkTo(target GroupPtrType) {
	g.onLinkChanged().Trigger(target)
}

func (g *Group[GroupType, GroupPtrType]) onLinkChanged() *Event1[GroupPtrType] {
	g.linkChangedOnce.Do(func() {
		g.linkChanged = New1[GroupPtrType]()
	})

	return g.linkChanged
}

// linkFields calls LinkTo on every pointer field of group with the field of target at the same index. A nil target is
// replaced by an empty group, so all fields get unlinked.
func linkFields[GroupType any](group, target *GroupType) {
	if target == nil {
		target = new(GroupType)
	}

	groupValue := reflect.ValueOf(group).Elem()
	targetValue := reflect.ValueOf(target).Elem()

	for i := 0; i < groupValue.NumField(); i++ {
		field := groupValue.Field(i)
		if field.Kind() != reflect.Pointer {
			continue
		}

		if linkTo := field.MethodByName("LinkTo"); linkTo.IsValid() {
			linkTo.Call([]reflect.Value{targetValue.Field(i)})
		}
	}
}

// groupPtr is the pointer to a struct that embeds a Group.
type groupPtr[GroupType any, GroupPtrType interface{ *GroupType }] interface {
	*GroupType

	onLinkChanged() *Event1[GroupPtrType]
	LinkTo(target GroupPtrType)
}
