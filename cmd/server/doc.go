/*
Command server runs termhost, a PTY terminal session host.

Configuration comes from the environment (see internal/infrastructure/config)
and a few flags override it:

	server -port 8000 -host 127.0.0.1 -shell /bin/zsh -dev

Output of each session is published on the topic "terminal-data-<id>" and
delivered to websocket clients that listen on it at /stream.
*/
package main
