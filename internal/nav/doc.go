// Package nav holds the site navigation model and the builder that turns
// authored navigation data into the immutable SiteConfig handed to renderers.
//
// A SiteConfig is produced once per invocation by Build (or BuildConfig for the
// guide's embedded navigation) and is never mutated afterwards. Shape problems
// in the authored data are reported as a single classified validation error so
// they block publication before any renderer sees the configuration.
package nav
