package commands

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Install Claude workflow bundles"
	MsgRootLong  = `cwkit fetches a workflow bundle from a remote repository and installs
its agents, commands, skills, and hooks into your local .claude
directory. The merge is strictly additive: files you already have are
never overwritten or deleted.`

	MsgInstallShort = "Fetch a bundle and merge it into the target"
	MsgInstallLong  = `Install fetches the given owner/name bundle (or the configured default)
into a temporary staging area and merges its allowlisted directories
(agents, commands, skills, hooks) into the target. Existing entries in
the target always win; the bundle only fills the gaps.`
	MsgInstallExample = `  # Install the default bundle into ./.claude
  cwkit install

  # Install a specific bundle into an explicit target
  cwkit install CloudAI-X/claude-workflow --target ~/.claude`

	MsgStatusShort = "Show what the target tree currently contains"
	MsgInfoShort   = "Fetch a bundle and show its description without installing"
	MsgInfoLong    = `Info downloads the bundle into a temporary staging area, renders its
README and metadata, and removes the staging area again. Nothing is
installed.`
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInstalledFormat       = "Installed %s\n"
	MsgInstalledBundleFormat = "Installed %s (%s)\n"
	MsgStatsFormat           = "  %d added, %d skipped (already present)\n\n"
	MsgNoReadme              = "This bundle has no README.\n"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagTarget  = "Target directory to install into (default ./.claude)"
	MsgFlagTimeout = "Fetch timeout in seconds (overrides configuration)"
)
