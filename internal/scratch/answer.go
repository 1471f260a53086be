package scratch

// Answer is the result of a validation: yes, or no with a reason for the user.
type Answer struct {
	IsYes       bool   `json:"is_yes"`
	Explanation string `json:"explanation,omitempty"`
}

func Yes() Answer {
	return Answer{IsYes: true}
}

func No(explanation string) Answer {
	return Answer{IsYes: false, Explanation: explanation}
}

func (a Answer) IsNo() bool {
	return !a.IsYes
}

func (a Answer) String() string {
	if a.IsYes {
		return "Yes"
	}
	return "No(" + a.Explanation + ")"
}
