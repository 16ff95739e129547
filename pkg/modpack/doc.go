// Package modpack models CurseForge-style modpack manifests and reads them
// out of exported pack archives.
//
// A pack export is a zip archive with a manifest.json at its root:
//
//	{
//	  "name": "All The Mods 9",
//	  "version": "0.2.60",
//	  "minecraft": {
//	    "version": "1.20.1",
//	    "modLoaders": [{"id": "forge-47.2.20", "primary": true}]
//	  },
//	  "files": [
//	    {"projectID": 238222, "fileID": 4712866, "required": true}
//	  ]
//	}
//
// Only the files list is required. Everything else is pack metadata used by
// the report.
//
// # Usage
//
//	m, err := modpack.Open("ATM9-0.2.60.zip")
//	if err != nil {
//	    return err // errors carry INVALID_ARCHIVE / INVALID_MANIFEST codes
//	}
//	for _, f := range m.Files {
//	    fmt.Println(f.ProjectID, f.FileID)
//	}
package modpack
