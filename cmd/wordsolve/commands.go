package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordsolve/internal/cli"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/server"
	"github.com/bastiangx/wordsolve/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configFlag string
	debugMode  bool

	appConfig  *config.Config
	configPath string

	wordLength int
	exclude    string
	include    string
	dictPath   string
	apiKey     string
	rankNow    bool

	rootCmd = &cobra.Command{
		Use:           AppName,
		Short:         "Narrow a word list to the words that fit a Wordle-style game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			if cmd.Name() == versionCmd.Name() {
				return nil
			}

			cfg, used, err := config.LoadConfigWithPriority(configFlag)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			appConfig, configPath = cfg, used
			log.Debugf("Using config file: (%s)", used)
			return nil
		},
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Run one attempt and print the candidates",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}

	replCmd = &cobra.Command{
		Use:   "repl",
		Short: "Play a game interactively, keeping inputs between attempts",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve msgpack requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default config if none exists",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the active config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(appConfig)
		},
	}
	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the path of the active config file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if configPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(built-in defaults)")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run:   runVersion,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")

	for _, c := range []*cobra.Command{solveCmd, replCmd, serveCmd} {
		c.Flags().IntVarP(&wordLength, "length", "n", 0, "Word length (default from config)")
		c.Flags().StringVar(&dictPath, "dict", "", "Dictionary file, one word per line (default from config)")
		c.Flags().StringVar(&apiKey, "key", "", "API key for ranking (default from the env var in rank.api_key_env)")
	}
	solveCmd.Flags().StringVarP(&exclude, "exclude", "x", "", "Letters known to be absent")
	solveCmd.Flags().StringVarP(&include, "include", "i", "", "Inclusions such as 2A,-4E,+R")
	solveCmd.Flags().BoolVar(&rankNow, "rank", false, "Rank even before the usual attempt threshold")

	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(solveCmd, replCmd, serveCmd, configCmd, versionCmd)
}

// newSolver builds a solver from the active config. forceRank drops the
// attempt threshold to the first attempt.
func newSolver(forceRank bool) (*session.Solver, error) {
	cfg := *appConfig
	if forceRank {
		cfg.Rank.MinAttempt = 1
	}
	return session.FromConfig(&cfg)
}

// baseRequest fills a request from flags, falling back to the config.
func baseRequest() session.Request {
	req := session.Request{
		WordLength: appConfig.Solver.WordLength,
		DictPath:   appConfig.Dict.Path,
		Credential: appConfig.Rank.APIKey(),
	}
	if wordLength > 0 {
		req.WordLength = wordLength
	}
	if dictPath != "" {
		req.DictPath = dictPath
	}
	if apiKey != "" {
		req.Credential = apiKey
	}

	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
		return req
	}
	req.DictPath = resolver.ResolveDictPath(req.DictPath)
	log.Debugf("Using dictionary at: %s", req.DictPath)
	return req
}

func runSolve(cmd *cobra.Command, args []string) error {
	solver, err := newSolver(rankNow)
	if err != nil {
		return err
	}
	req := baseRequest()
	req.Exclusions = exclude
	req.Inclusions = include

	res, err := solver.Solve(cmd.Context(), session.NewState(), req)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.NewStyles(appConfig.CLI.Color).Result(res))
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	solver, err := newSolver(false)
	if err != nil {
		return err
	}
	log.SetReportTimestamp(false)
	log.Debug("Repl defaults:", "length", wordLength, "dict", dictPath)

	h := cli.NewInputHandler(solver, baseRequest(), os.Stdin, cmd.OutOrStdout(), cli.NewStyles(appConfig.CLI.Color))
	return h.Start(cmd.Context())
}

func runServe(cmd *cobra.Command, args []string) error {
	solver, err := newSolver(false)
	if err != nil {
		return err
	}
	req := baseRequest()
	srv := server.NewServer(solver, server.Options{
		WordLength: req.WordLength,
		DictPath:   req.DictPath,
		Credential: req.Credential,
		MaxWords:   appConfig.Server.MaxWords,
	}, os.Stdin, os.Stdout)

	showStartupInfo(req)
	return srv.Start(cmd.Context())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		resolver, err := utils.NewPathResolver()
		if err != nil {
			return err
		}
		if path, err = resolver.GetConfigPath(config.FileName); err != nil {
			return err
		}
	}
	if _, err := config.InitConfig(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), utils.GetAbsolutePath(path))
	return nil
}

func runVersion(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordSolve ] Narrows word lists for Wordle-style games")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the server on stderr.
func showStartupInfo(req session.Request) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" WordSolve ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dict: ( %s )", utils.GetAbsolutePath(req.DictPath))
	log.Infof("word length: %d", req.WordLength)
	log.Infof("ranking: %t", req.Credential != "")
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
