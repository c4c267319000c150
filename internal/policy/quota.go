// Package policy holds the post quota and like toggle rules. Nothing here
// touches storage; callers supply the counts.
package policy

import (
	"encoding/json"
	"fmt"
	"time"
)

// UnlimitedAbove is the friend count above which posting is unlimited.
const UnlimitedAbove = 10

// ReasonNoFriends is returned for users without any friend reference.
const ReasonNoFriends = "need at least 1 friend to post"

// Decision is the outcome of Evaluate. Reason is empty when Allowed.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Evaluate decides whether a user with friendCount friends, who already
// posted postsMadeToday times in the current window, may post again.
// Negative inputs are treated as zero.
func Evaluate(friendCount, postsMadeToday int) Decision {
	friendCount, postsMadeToday = max(friendCount, 0), max(postsMadeToday, 0)

	switch {
	case friendCount == 0:
		return Decision{Reason: ReasonNoFriends}
	case friendCount > UnlimitedAbove:
		return Decision{Allowed: true}
	case postsMadeToday >= friendCount:
		return Decision{Reason: fmt.Sprintf("reached your limit of %d posts for today", friendCount)}
	}
	return Decision{Allowed: true}
}

// Window returns the quota window containing now: [local midnight, next
// local midnight), in now's location. On DST transition days the window is
// 23 or 25 hours long.
func Window(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

// Remaining is the number of posts a user may still make in the current
// window. It serialises as the string "unlimited" or as an integer.
type Remaining struct {
	Unlimited bool
	Count     int
}

// RemainingPosts mirrors Evaluate: Remaining is non-zero exactly when
// Evaluate allows a post.
func RemainingPosts(friendCount, postsMadeToday int) Remaining {
	friendCount, postsMadeToday = max(friendCount, 0), max(postsMadeToday, 0)
	if friendCount > UnlimitedAbove {
		return Remaining{Unlimited: true}
	}
	return Remaining{Count: max(0, friendCount-postsMadeToday)}
}

// Positive reports whether at least one more post is allowed.
func (r Remaining) Positive() bool {
	return r.Unlimited || r.Count > 0
}

func (r Remaining) String() string {
	if r.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(r.Count)
}

func (r Remaining) MarshalJSON() ([]byte, error) {
	if r.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(r.Count)
}

func (r *Remaining) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "unlimited" {
			return fmt.Errorf("invalid remaining value %q", s)
		}
		*r = Remaining{Unlimited: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = Remaining{Count: n}
	return nil
}
