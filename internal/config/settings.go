package config

import (
	"sync"

	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/dshills/gunicorn/internal/config/validate"
)

var (
	builtinOnce sync.Once
	builtin     *registry.Registry
)

// Builtin returns the process-wide registry holding the built-in setting
// catalog. It is populated exactly once and frozen thereafter.
func Builtin() *registry.Registry {
	builtinOnce.Do(func() {
		builtin = registry.New()
		registerBuiltins(builtin)
	})
	return builtin
}

// registerBuiltins declares the full setting catalog. Registration order
// matters: it fixes each setting's order index, which breaks ties within
// a section when the CLI builder sorts options.
func registerBuiltins(r *registry.Registry) {
	r.MustRegister(registry.Setting{
		Name:      "config",
		Section:   "Config File",
		CLI:       []string{"-c", "--config"},
		Meta:      "FILE",
		Type:      registry.TypeString,
		Validator: validate.String,
		Desc: `
			The path to a config file.

			Only has an effect when specified on the command line or as
			part of an application specific configuration.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "bind",
		Section:   "Server Socket",
		CLI:       []string{"-b", "--bind"},
		Meta:      "ADDRESS",
		Type:      registry.TypeString,
		Validator: validate.String,
		Default:   "127.0.0.1:8000",
		Desc: `
			The socket to bind.

			A string of the form: 'HOST', 'HOST:PORT', 'unix:PATH'. An IP
			is a valid HOST.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "backlog",
		Section:   "Server Socket",
		CLI:       []string{"--backlog"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   2048,
		Desc: `
			The maximum number of pending connections.

			This refers to the number of clients that can be waiting to be
			served. Exceeding this number results in the client getting an
			error when attempting to connect. It should only affect servers
			under significant load.

			Must be a positive integer. Generally set in the 64-2048 range.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "workers",
		Section:   "Worker Processes",
		CLI:       []string{"-w", "--workers"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   1,
		Desc: `
			The number of worker processes for handling requests.

			A positive integer generally in the 2-4 x $(NUM_CORES) range.
			You'll want to vary this a bit to find the best for your
			particular application's work load.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "worker_class",
		Section:   "Worker Processes",
		CLI:       []string{"-k", "--worker-class"},
		Meta:      "STRING",
		Type:      registry.TypeString,
		Validator: validate.String,
		Default:   "sync",
		Desc: `
			The type of workers to use.

			The default class (sync) should handle most 'normal' types of
			workloads. A string naming a registered worker class; custom
			classes can be registered with the worker package before the
			configuration is built.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "worker_connections",
		Section:   "Worker Processes",
		CLI:       []string{"--worker-connections"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   1000,
		Desc: `
			The maximum number of simultaneous clients.

			This setting only affects worker types that multiplex many
			connections per process.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "max_requests",
		Section:   "Worker Processes",
		CLI:       []string{"--max-requests"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   0,
		Desc: `
			The maximum number of requests a worker will process before
			restarting.

			Any value greater than zero will limit the number of requests
			a worker will process before automatically restarting. This is
			a simple method to help limit the damage of memory leaks.

			If this is set to zero (the default) then the automatic worker
			restarts are disabled.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "timeout",
		Section:   "Worker Processes",
		CLI:       []string{"-t", "--timeout"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   30,
		Desc: `
			Workers silent for more than this many seconds are killed and
			restarted.

			Generally set to thirty seconds. Only set this noticeably
			higher if you're sure of the repercussions for sync workers.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "keepalive",
		Section:   "Worker Processes",
		CLI:       []string{"--keep-alive"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   2,
		Desc: `
			The number of seconds to wait for requests on a Keep-Alive
			connection.

			Generally set in the 1-5 seconds range.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "debug",
		Section:   "Debugging",
		CLI:       []string{"--debug"},
		Action:    registry.ActionStoreTrue,
		Type:      registry.TypeBool,
		Validator: validate.Bool,
		Default:   false,
		Desc: `
			Turn on debugging in the server.

			This limits the number of worker processes to 1 and changes
			some error handling that's sent to clients.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "spew",
		Section:   "Debugging",
		CLI:       []string{"--spew"},
		Action:    registry.ActionStoreTrue,
		Type:      registry.TypeBool,
		Validator: validate.Bool,
		Default:   false,
		Desc: `
			Install a trace function that spews every line executed by the
			server.

			This is the nuclear option.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "preload_app",
		Section:   "Server Mechanics",
		CLI:       []string{"--preload"},
		Action:    registry.ActionStoreTrue,
		Type:      registry.TypeBool,
		Validator: validate.Bool,
		Default:   false,
		Desc: `
			Load application code before the worker processes are forked.

			By preloading an application you can save some RAM resources
			as well as speed up server boot times. Although, if you defer
			application loading to each worker process, you can reload your
			application code easily by restarting workers.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "daemon",
		Section:   "Server Mechanics",
		CLI:       []string{"-D", "--daemon"},
		Action:    registry.ActionStoreTrue,
		Type:      registry.TypeBool,
		Validator: validate.Bool,
		Default:   false,
		Desc: `
			Daemonize the server process.

			Detaches the server from the controlling terminal and enters
			the background.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "pidfile",
		Section:   "Server Mechanics",
		CLI:       []string{"-p", "--pid"},
		Meta:      "FILE",
		Type:      registry.TypeString,
		Validator: validate.String,
		Desc: `
			A filename to use for the PID file.

			If not set, no PID file will be written.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "user",
		Section:   "Server Mechanics",
		CLI:       []string{"-u", "--user"},
		Meta:      "USER",
		Type:      registry.TypeInt,
		Validator: validate.User,
		Default:   validate.CurrentUID(),
		Desc: `
			Switch worker processes to run as this user.

			A valid user id (as an integer) or the name of a user that can
			be resolved against the system user database. Defaults to the
			effective uid of the process.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "group",
		Section:   "Server Mechanics",
		CLI:       []string{"-g", "--group"},
		Meta:      "GROUP",
		Type:      registry.TypeInt,
		Validator: validate.Group,
		Default:   validate.CurrentGID(),
		Desc: `
			Switch worker processes to run as this group.

			A valid group id (as an integer) or the name of a group that
			can be resolved against the system group database. Defaults to
			the effective gid of the process.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "umask",
		Section:   "Server Mechanics",
		CLI:       []string{"-m", "--umask"},
		Meta:      "INT",
		Type:      registry.TypeInt,
		Validator: validate.PosInt,
		Default:   0,
		Desc: `
			A bit mask for the file mode on files written by the server.

			Note that this affects unix socket permissions.

			A string compatible with base-0 integer parsing, so values
			like "0", "0xFF", "0022" are valid for decimal, hex, and octal
			representations.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "tmp_upload_dir",
		Section:   "Server Mechanics",
		Meta:      "DIR",
		Type:      registry.TypeString,
		Validator: validate.String,
		Desc: `
			Directory to store temporary request data as they are read.

			This path should be writable by the process permissions set
			for the workers. If not specified, a system generated temporary
			directory is used.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "logfile",
		Section:   "Logging",
		CLI:       []string{"--log-file"},
		Meta:      "FILE",
		Type:      registry.TypeString,
		Validator: validate.String,
		Default:   "-",
		Desc: `
			The log file to write to.

			"-" means log to stdout.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "loglevel",
		Section:   "Logging",
		CLI:       []string{"--log-level"},
		Meta:      "LEVEL",
		Type:      registry.TypeString,
		Validator: validate.String,
		Default:   "info",
		Desc: `
			The granularity of log outputs.

			Valid level names are:

			* debug
			* info
			* warning
			* error
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "logconfig",
		Section:   "Logging",
		CLI:       []string{"--log-config"},
		Meta:      "FILE",
		Type:      registry.TypeString,
		Validator: validate.String,
		Desc: `
			The log config file to use.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "proc_name",
		Section:   "Process Naming",
		CLI:       []string{"-n", "--name"},
		Meta:      "STRING",
		Type:      registry.TypeString,
		Validator: validate.String,
		Desc: `
			A base to use for process naming.

			This affects things like ps and top. If you're going to be
			running more than one instance of the server you'll probably
			want to set a name to tell them apart.

			It defaults to 'gunicorn'.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "default_proc_name",
		Section:   "Process Naming",
		Type:      registry.TypeString,
		Validator: validate.String,
		Default:   "gunicorn",
		Desc: `
			Internal setting that is adjusted for each type of application.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "when_ready",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     1,
		Validator: validate.Callable(1),
		Default:   ServerHook(defaultWhenReady),
		Desc: `
			Called just after the server is started.

			The callable needs to accept a single instance variable for
			the server.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "pre_fork",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
		Default:   ServerWorkerHook(defaultPreFork),
		Desc: `
			Called just before a worker is forked.

			The callable needs to accept two instance variables for the
			server and the new worker.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "post_fork",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
		Default:   ServerWorkerHook(defaultPostFork),
		Desc: `
			Called just after a worker has been forked.

			The callable needs to accept two instance variables for the
			server and the new worker.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "pre_exec",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     1,
		Validator: validate.Callable(1),
		Default:   ServerHook(defaultPreExec),
		Desc: `
			Called just before a new master process is forked.

			The callable needs to accept a single instance variable for
			the server.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "pre_request",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
		Default:   RequestHook(defaultPreRequest),
		Desc: `
			Called just before a worker processes the request.

			The callable needs to accept two instance variables for the
			worker and the request.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "post_request",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
		Default:   RequestHook(defaultPostRequest),
		Desc: `
			Called after a worker processes the request.

			The callable needs to accept two instance variables for the
			worker and the request.
		`,
	})

	r.MustRegister(registry.Setting{
		Name:      "worker_exit",
		Section:   "Server Hooks",
		Type:      registry.TypeCallable,
		Arity:     2,
		Validator: validate.Callable(2),
		Default:   ServerWorkerHook(defaultWorkerExit),
		Desc: `
			Called just after a worker has been exited.

			The callable needs to accept two instance variables for the
			server and the just-exited worker.
		`,
	})
}
