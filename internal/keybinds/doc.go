/*
Package keybinds provides customizable keyboard binding management.

# Overview

Bindings are grouped by context. Each key press is matched against the
active context first and falls back to the global context.

Contexts:
  - global: force quit
  - list: post list navigation and post actions
  - detail: the create/edit/view form (modifier keys only)
  - search: title filter input
  - text_input: comment input
  - confirm: yes/no modal

# Configuration File Format

Overrides live in ~/.postboard/keybinds.json. Each section maps an action to
a comma separated list of keys; a configured action replaces its defaults in
that context:

	{
	  "version": "1.0",
	  "list": {
	    "new_post": "n,a",
	    "delete_post": "x"
	  },
	  "detail": {
	    "save": "ctrl+s,ctrl+w"
	  }
	}

Unknown actions, empty keys or a required action left unbound make loading
fail; shadowing a global key is only a warning.
*/
package keybinds
