package constant

// AsciiArtLogo is the application's banner.
const AsciiArtLogo = `
  ___  ___ _ __ ___  ___ _ __  _ __ ___   ___  _ __ ___
 / __|/ __| '__/ _ \/ _ \ '_ \| '__/ _ \ / _ \| '_ ` + "`" + ` _ \
 \__ \ (__| | |  __/  __/ | | | | | (_) | (_) | | | | | |
 |___/\___|_|  \___|\___|_| |_|_|  \___/ \___/|_| |_| |_|
`
