// Package model holds the shared contracts of the build core: assets,
// environments, import requests, resolve results, transitions and the
// AssetContext capability set. It is the format-agnostic layer every other
// package speaks; it contains no resolution or emission logic of its own.
package model
