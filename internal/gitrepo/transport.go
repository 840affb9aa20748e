package gitrepo

const (
	defaultRemoteNameConstant = "origin"

	terminalPromptEnvironmentKeyConstant  = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValueConstant   = "0"
	sshCommandEnvironmentKeyConstant      = "GIT_SSH_COMMAND"
	nonInteractiveSSHCommandValueConstant = "ssh -o BatchMode=yes -o StrictHostKeyChecking=no"
)

// TransportConfiguration controls how remote operations (fetch, push, clone)
// authenticate and which remote they address. Credentials come from the
// caller's SSH agent; host-key verification is disabled by default so
// unattended fleet operations never block on a prompt. Callers that need
// strict verification supply their own environment.
type TransportConfiguration struct {
	Remote               string
	EnvironmentVariables map[string]string
}

// DefaultTransportConfiguration returns the non-interactive fleet transport defaults.
func DefaultTransportConfiguration() TransportConfiguration {
	return TransportConfiguration{
		Remote: defaultRemoteNameConstant,
		EnvironmentVariables: map[string]string{
			terminalPromptEnvironmentKeyConstant: terminalPromptDisabledValueConstant,
			sshCommandEnvironmentKeyConstant:     nonInteractiveSSHCommandValueConstant,
		},
	}
}

// remoteName resolves the configured remote, defaulting to origin.
func (configuration TransportConfiguration) remoteName() string {
	if len(configuration.Remote) == 0 {
		return defaultRemoteNameConstant
	}
	return configuration.Remote
}
