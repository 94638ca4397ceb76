// Command notofetch mirrors the Google Noto animated emoji set into a local
// directory and maintains the derived metadata and category indexes.
package main
