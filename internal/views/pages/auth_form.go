package pages

import (
	"sort"
	"strings"

	"doubtsolver/models"
)

// Authentication form modes.
const (
	AuthModeLogin  = "login"
	AuthModeSignup = "signup"
)

// AuthForm carries the state echoed back into the login and signup forms.
type AuthForm struct {
	Mode     string
	Message  string
	Username string
	Email    string
	Dark     bool
}

func (f AuthForm) signup() bool {
	return f.Mode == AuthModeSignup
}

func (f AuthForm) title() string {
	if f.signup() {
		return "Sign Up - Student Doubt Solver"
	}
	return "Login - Student Doubt Solver"
}

func (f AuthForm) heading() string {
	if f.signup() {
		return "Sign Up"
	}
	return "Login"
}

func (f AuthForm) action() string {
	if f.signup() {
		return "/signup"
	}
	return "/login"
}

func (f AuthForm) submitLabel() string {
	if f.signup() {
		return "Create Account"
	}
	return "Login"
}

// toggle returns the prompt, target and link label for switching modes.
func (f AuthForm) toggle() (text, href, label string) {
	if f.signup() {
		return "Already have an account?", "/login", "Login"
	}
	return "Don't have an account?", "/signup", "Sign Up"
}

func demoAccounts() string {
	defaults := models.DefaultCredentials()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"/"+defaults[name])
	}
	return strings.Join(pairs, ", ")
}
