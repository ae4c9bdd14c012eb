package scaffold

// AllowedLicenses lists the license identifiers accepted for new projects.
var AllowedLicenses = []string{
	"MIT",
	"Apache-2.0",
	"GPL-3.0",
	"GPL-2.0",
	"LGPL-2.1",
	"BSD-2-Clause",
	"BSD-3-Clause",
	"BSL-1.0",
	"CC0-1.0",
	"EPL-2.0",
	"AGPL-3.0",
	"MPL-2.0",
	"Unlicense",
	"Proprietary",
}

// DefaultDependencies seeds the dependency side file of a new project.
var DefaultDependencies = []string{
	"snowflake-snowpark-python>=1.42.0",
	"pyspark>=4.0.1",
	"numpy>=2.3.4",
	"pandas>=2.3.3",
	"build==1.3.0",
	"twine==6.2.0",
	"ruff==0.14.9",
	"pre-commit==4.5.1",
	"pytest==9.0.2",
	"pytest-cov==7.0.0",
	"pytest-asyncio==1.3.0",
}
