// Package distribution assembles deployable artifacts for Snowflake file
// staging.
//
// Snowflake stages reject uploads whose pyproject.toml is not at the top
// level of the archive, and sometimes reject the .whl extension outright.
// Two builders exist for producing a compliant zip:
//
//   - WheelBuilder runs the project's build frontend and copies each produced
//     wheel into dist/snowflake/ with only the extension changed.
//   - ArchiveBuilder zips the filtered source tree directly, with every entry
//     path relative to the project root.
//
// Both regenerate their output directory from scratch on every run and take a
// non-blocking file lock on the project so racing invocations fail cleanly
// instead of corrupting output.
package distribution
