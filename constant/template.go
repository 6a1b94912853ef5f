package constant

// Lua content sources must define these globals.
const (
	SearchItemsFn = "SearchItems"
	ItemInfoFn    = "ItemInfo"
)

// SourceTemplate is a text/template for scaffolding a new Lua content source.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias result { id: string, title: string, author: string|nil, thumbnail: string|nil, length: string|nil, type: string|nil, live: boolean|nil }
---@alias format { itag: number, url: string, mime_type: string|nil, headers: table<string, string>|nil }
---@alias info { id: string, title: string, author: string|nil, thumbnails: string[]|nil, length_seconds: number|nil, formats: format[]|nil, hls: string|nil, live: boolean|nil }


----- IMPORTS -----
local http = require("http")
local json = require("json")
--- END IMPORTS ---



----- VARIABLES -----
local base = "{{ .URL }}"
--- END VARIABLES ---



----- MAIN -----

--- Searches the catalog.
-- @param query string Term to search for
-- @return result[] Rows in catalog order; rows without type "video" are ignored
function {{ .SearchItemsFn }}(query)
	return {}
end


--- Describes the streams of one item.
-- @param id string Item id returned by {{ .SearchItemsFn }}
-- @return info Stream description
function {{ .ItemInfoFn }}(id)
	return { id = id, title = id, formats = {} }
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
