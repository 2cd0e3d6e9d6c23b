package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "A build-aware dotfile deployer"
	MsgRootLong = `towboat deploys a directory of dotfiles into a target directory, one file
at a time. Files without build tags are symlinked back to their source;
files carrying tag markers are filtered for the requested build tag and
written as regular files. A per-package boat.toml decides which files
participate and where they land.`

	MsgDeployShort = "Deploy the package's files into the target directory"
	MsgDeployLong = `Deploy inspects every file the package's boat.toml includes for the
requested build tag, then symlinks untagged files and materializes
tag-filtered copies of tagged ones.

Files already in place are left alone. A target that towboat does not
recognize as its own work blocks deployment until you pass --force,
--adopt, or move the file out of the way.`
	MsgDeployExample = `  # Deploy the current directory into your home
  towboat deploy

  # Deploy one package from a directory of packages
  towboat deploy fish -d ~/dotfiles

  # Deploy a specific package for the linux build
  towboat deploy -d ~/dotfiles/fish -b linux

  # Preview without touching anything
  towboat deploy --dry-run`

	MsgAdoptShort = "Copy existing target files back into the package"
	MsgAdoptLong = `Adopt runs the same discovery as deploy, but for every included file
whose target already exists it copies the target's current content back
into the package source instead of overwriting it. Useful when bringing
a machine's live configuration under towboat's management.`
	MsgAdoptExample = `  # Pull current ~/.gitconfig et al back into the package
  towboat adopt -d ~/dotfiles/git`

	MsgRemoveShort = "Remove the package's deployed files from the target"
	MsgRemoveLong = `Remove deletes every target path the package would deploy, then prunes
directories the removal left empty. Package sources are never touched.`
	MsgRemoveExample = `  # Undo a deployment
  towboat remove -d ~/dotfiles/fish`

	MsgInitShort = "Write a starter boat.toml into a package directory"
	MsgInitLong = `Init creates a boat.toml with a permissive default policy in the given
directory (the current directory if none is given). It refuses to
overwrite an existing manifest.`
	MsgInitExample = `  # Start managing a new package
  towboat init ~/dotfiles/tmux`

	MsgDocsShort = "Show extended documentation topics"
	MsgDocsLong  = `Docs renders towboat's built-in documentation. Run without arguments to
list the available topics.`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgManifestCreated = "Created %s\n"
	MsgAvailableTopics = "Available topics:"
	MsgTopicItem       = "  %s\n"

	// Error messages
	MsgErrManifestExists = "manifest already exists: %s"
	MsgErrUnknownTopic   = "unknown topic: %s"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDir     = "Package directory, or the directory containing packages when a package name is given"
	MsgFlagTarget  = "Target directory to deploy into"
	MsgFlagBuild   = "Build tag to deploy for (defaults to the manifest's first build tag)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagForce   = "Overwrite conflicting or manually modified target files"
	MsgFlagAdopt   = "Copy existing target files back into the package instead of overwriting"
)
