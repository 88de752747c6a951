package handlers

// graphiQLPage loads GraphiQL from a CDN and points it at the page's own URL.
var graphiQLPage = []byte(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<title>jotter GraphiQL</title>
	<style>
		body { height: 100%; margin: 0; width: 100%; overflow: hidden; }
		#graphiql { height: 100vh; }
	</style>
	<link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
	<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
</head>
<body>
	<div id="graphiql">Loading...</div>
	<script>
		const params = new URLSearchParams(window.location.search);
		const fetcher = GraphiQL.createFetcher({ url: window.location.pathname });
		ReactDOM.createRoot(document.getElementById("graphiql")).render(
			React.createElement(GraphiQL, {
				fetcher: fetcher,
				defaultQuery: params.get("query") || undefined,
				variables: params.get("variables") || undefined,
			})
		);
	</script>
</body>
</html>
`)
