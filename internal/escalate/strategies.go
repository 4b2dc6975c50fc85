package escalate

import (
	"fmt"
	"os/user"
)

// Group names that conventionally carry sudo rights.
var sudoGroups = []string{"sudo", "wheel", "admin"}

// SudoDirect is the mediated switch straight to the target account.
type SudoDirect struct {
	SudoPath string

	// Confirm asks before attempting when group membership leaves the
	// permission question ambiguous. Nil declines.
	Confirm func(question string) bool

	// CurrentUser overrides the identity probe for tests.
	CurrentUser func() (*user.User, error)
}

func (s *SudoDirect) Name() string { return "sudo" }

func (s *SudoDirect) Available() bool { return s.SudoPath != "" }

func (s *SudoDirect) Attempt(target, scriptPath string) error {
	if !s.permitted() {
		question := fmt.Sprintf("You do not appear to have sudo rights. Try sudo to %s anyway?", target)
		if s.Confirm == nil || !s.Confirm(question) {
			return fmt.Errorf("sudo to %s declined", target)
		}
	}
	return runInteractive(s.SudoPath, "-u", target, "--", scriptPath)
}

// permitted applies the group-membership heuristic: root itself is
// always allowed, otherwise membership in a conventional sudo group
// suggests escalation will be permitted. This is a hint, not an
// authority check; sudo has the final say.
func (s *SudoDirect) permitted() bool {
	currentUser := s.CurrentUser
	if currentUser == nil {
		currentUser = user.Current
	}

	current, err := currentUser()
	if err != nil {
		return false
	}
	if current.Uid == "0" || current.Username == RootAccount {
		return true
	}

	groupIDs, err := current.GroupIds()
	if err != nil {
		return false
	}
	for _, id := range groupIDs {
		group, err := user.LookupGroupId(id)
		if err != nil {
			continue
		}
		for _, name := range sudoGroups {
			if group.Name == name {
				return true
			}
		}
	}
	return false
}

// SudoViaRoot hops through the root account with the mediation tool:
// mediated switch to root, then mediated switch again to the real
// target from there.
type SudoViaRoot struct {
	SudoPath string
}

func (s *SudoViaRoot) Name() string { return "sudo via root" }

func (s *SudoViaRoot) Available() bool { return s.SudoPath != "" }

func (s *SudoViaRoot) Attempt(target, scriptPath string) error {
	if target == RootAccount {
		return errNotApplicable
	}
	return runInteractive(s.SudoPath, "-u", RootAccount, "--", s.SudoPath, "-u", target, "--", scriptPath)
}

// SuDirect is the unmediated switch: su prompts for the target
// account's own credential.
type SuDirect struct{}

func (s *SuDirect) Name() string { return "su" }

func (s *SuDirect) Available() bool { return true }

func (s *SuDirect) Attempt(target, scriptPath string) error {
	return runInteractive("su", target, "-c", scriptPath)
}

// SuViaRoot switches to root with root's credential, then from root to
// the target.
type SuViaRoot struct{}

func (s *SuViaRoot) Name() string { return "su via root" }

func (s *SuViaRoot) Available() bool { return true }

func (s *SuViaRoot) Attempt(target, scriptPath string) error {
	if target == RootAccount {
		return errNotApplicable
	}
	return runInteractive("su", RootAccount, "-c", fmt.Sprintf("su %s -c '%s'", target, scriptPath))
}
