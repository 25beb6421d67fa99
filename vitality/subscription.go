package vitality

import (
	"strconv"

	"github.com/gamehive/observer/runtime/event"
)

// LevelUpSource is the publisher a Health listens to. It is implemented by *progression.Level.
type LevelUpSource interface {
	// Subscribe registers a callback that is called with the new level on every level up.
	Subscribe(callback func(newLevel int)) *event.Hook[func(int)]
}

// SubscriptionState describes whether a Health currently listens to its source.
type SubscriptionState uint8

const (
	// Unsubscribed is the state of a Health that is not attached to any source.
	Unsubscribed SubscriptionState = iota
	// Subscribed is the state of a Health that resets on the level ups of its source.
	Subscribed
)

func (s SubscriptionState) String() string {
	switch s {
	case Unsubscribed:
		return "Unsubscribed"
	case Subscribed:
		return "Subscribed"
	default:
		return "SubscriptionState(" + strconv.Itoa(int(s)) + ")"
	}
}

// subscription ties a hook to the source it was registered at. Its identity is used to discard callbacks that were
// already in flight when the subscription got replaced or removed.
type subscription struct {
	source LevelUpSource
	hook   *event.Hook[func(int)]
}
